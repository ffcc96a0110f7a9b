package app

import (
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace flattens the multi-line SQL the repositories keep as
// constants (ticket generation, allocation summary) onto one line for span
// attributes, capped at maxTracedQueryLength bytes without splitting a rune.
func formatDBQueryForTrace(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) <= maxTracedQueryLength {
		return flat
	}
	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(flat[cut]) {
		cut--
	}
	return flat[:cut] + "..."
}
