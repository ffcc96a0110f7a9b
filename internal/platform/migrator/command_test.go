package migrator

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

type fakeSteps struct {
	calls   []string
	version uint
	applied bool
}

func (f *fakeSteps) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeSteps) Up() error               { return f.record("up") }
func (f *fakeSteps) Down(steps int) error    { return f.record("down:" + strconv.Itoa(steps)) }
func (f *fakeSteps) Goto(version uint) error { return f.record("goto:" + strconv.Itoa(int(version))) }
func (f *fakeSteps) Force(version int) error { return f.record("force:" + strconv.Itoa(version)) }
func (f *fakeSteps) Source() string          { return "file:///migrations" }

func (f *fakeSteps) Version() (uint, bool, bool, error) {
	return f.version, false, f.applied, nil
}

func TestRun_Dispatch(t *testing.T) {
	cases := []struct {
		args []string
		call string
		out  string
	}{
		{args: []string{"up"}, call: "up", out: "migrations applied (source=file:///migrations)"},
		{args: []string{"down"}, call: "down:1", out: "rolled back 1 migration(s)"},
		{args: []string{"DOWN", "3"}, call: "down:3", out: "rolled back 3 migration(s)"},
		{args: []string{"goto", "2"}, call: "goto:2", out: "migrated to version 2"},
		{args: []string{"force", "1"}, call: "force:1", out: "forced version to 1"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			fake := &fakeSteps{}
			var out bytes.Buffer
			if err := Run(fake, tc.args, &out); err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(fake.calls) != 1 || fake.calls[0] != tc.call {
				t.Fatalf("unexpected calls: %v", fake.calls)
			}
			if !strings.Contains(out.String(), tc.out) {
				t.Fatalf("unexpected output: %q", out.String())
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := Run(&fakeSteps{}, []string{"version"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "version: none" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := Run(&fakeSteps{version: 1, applied: true}, []string{"version"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "version: 1 dirty: false" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_RejectsBadArguments(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"sideways"},
		{"down", "0"},
		{"down", "x"},
		{"force"},
		{"force", "-1"},
		{"goto"},
		{"goto", "v2"},
	} {
		fake := &fakeSteps{}
		if err := Run(fake, args, &bytes.Buffer{}); err == nil {
			t.Fatalf("expected error for %v", args)
		}
		if len(fake.calls) != 0 {
			t.Fatalf("unexpected calls for %v: %v", args, fake.calls)
		}
	}
}
