// Package migrator applies the SQL files under db/migrations with
// golang-migrate.
package migrator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultDirs are checked after MIGRATIONS_DIR.
var DefaultDirs = []string{"./db/migrations", "/app/db/migrations"}

type Migrator struct {
	m      *migrate.Migrate
	source string
}

// New opens a migrator for dbURL reading files from dir.
func New(dbURL, dir string) (*Migrator, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir %q: %w", dir, err)
	}
	source := "file://" + filepath.ToSlash(abs)
	m, err := migrate.New(source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{m: m, source: source}, nil
}

func (m *Migrator) Source() string {
	return m.source
}

// Up applies every pending migration. Nothing to do is not an error.
func (m *Migrator) Up() error {
	return ignoreNoChange(m.m.Up())
}

func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("down steps must be > 0")
	}
	return ignoreNoChange(m.m.Steps(-steps))
}

func (m *Migrator) Goto(version uint) error {
	return ignoreNoChange(m.m.Migrate(version))
}

func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Version reports the applied version; ok is false on a fresh database.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("read version: %w", err)
	}
	return version, dirty, true, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration db: %w", dbErr)
	}
	return nil
}

// ResolveDir returns the first existing directory among MIGRATIONS_DIR and
// the given candidates.
func ResolveDir(candidates ...string) (string, error) {
	all := append([]string{strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))}, candidates...)
	for _, candidate := range all {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, %s)", strings.Join(candidates, ", "))
}

func ignoreNoChange(err error) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
