package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/season-tickets/internal/config"
)

func isMemoryStore(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), config.MemoryDBURL)
}

// redactDBURL masks the password so the URL can be logged.
func redactDBURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return "<dsn>"
	}
	return parsed.Redacted()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}
	return ""
}
