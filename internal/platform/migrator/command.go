package migrator

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Usage lists the subcommands understood by Run.
const Usage = "up | down [steps] | version | force <version> | goto <version>"

// Steps is the subset of Migrator that Run drives.
type Steps interface {
	Up() error
	Down(steps int) error
	Goto(version uint) error
	Force(version int) error
	Version() (version uint, dirty bool, ok bool, err error)
	Source() string
}

var _ Steps = (*Migrator)(nil)

// Run executes one migration subcommand and writes a status line to out.
func Run(m Steps, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing migration command (%s)", Usage)
	}

	switch cmd := strings.ToLower(strings.TrimSpace(args[0])); cmd {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		fmt.Fprintf(out, "migrations applied (source=%s)\n", m.Source())
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		if err := m.Down(steps); err != nil {
			return err
		}
		fmt.Fprintf(out, "rolled back %d migration(s)\n", steps)
	case "version":
		version, dirty, ok, err := m.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "version: none")
			return nil
		}
		fmt.Fprintf(out, "version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(args[1])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return err
		}
		fmt.Fprintf(out, "forced version to %d\n", version)
	case "goto":
		if len(args) < 2 {
			return fmt.Errorf("goto requires a target version argument")
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[1]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[1], err)
		}
		if err := m.Goto(uint(target)); err != nil {
			return err
		}
		fmt.Fprintf(out, "migrated to version %d\n", target)
	default:
		return fmt.Errorf("unknown migration command %q (%s)", cmd, Usage)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}
	return int(value), nil
}
