package migrator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	present := filepath.Join(dir, "migrations")
	if err := os.Mkdir(present, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("MIGRATIONS_DIR", "")

	got, err := ResolveDir(missing, present)
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if got != present {
		t.Fatalf("expected %s, got %s", present, got)
	}

	t.Setenv("MIGRATIONS_DIR", present)
	if got, err := ResolveDir(missing); err != nil || got != present {
		t.Fatalf("expected env dir to win, got %q err=%v", got, err)
	}

	t.Setenv("MIGRATIONS_DIR", "")
	if _, err := ResolveDir(missing); err == nil {
		t.Fatalf("expected error when nothing exists")
	}
}

func TestSchemaFilesArePaired(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "db", "migrations")
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(ups) == 0 {
		t.Fatalf("no migrations found in %s", dir)
	}
	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Fatalf("missing down migration for %s", filepath.Base(up))
		}
	}
}
