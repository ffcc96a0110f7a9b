package main

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

// table renders left-aligned columns separated by two spaces.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeRow := func(cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				_, _ = buf.WriteString(cell)
				break
			}
			_, _ = buf.WriteString(cell)
			_, _ = buf.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
		}
		_ = buf.WriteByte('\n')
	}

	writeRow(t.header)
	for _, row := range t.rows {
		writeRow(row)
	}
	_, err := buf.WriteTo(w)
	return err
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
