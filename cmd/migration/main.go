package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/platform/migrator"
)

func main() {
	logger := logging.NewJSON(logging.LevelInfo)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s %s\n", filepath.Base(os.Args[0]), migrator.Usage)
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}

	dir, err := migrator.ResolveDir(migrator.DefaultDirs...)
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		os.Exit(1)
	}

	m, err := migrator.New(dbURL, dir)
	if err != nil {
		logger.Error("open migrator", "error", err)
		os.Exit(1)
	}

	runErr := migrator.Run(m, os.Args[1:], os.Stdout)
	if err := m.Close(); err != nil {
		logger.Warn("close migrator", "error", err)
	}
	if runErr != nil {
		logger.Error("migration failed", "command", os.Args[1], "error", runErr)
		os.Exit(1)
	}
}
