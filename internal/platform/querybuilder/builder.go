// Package querybuilder renders small PostgreSQL statements with numbered
// placeholders. It covers the handful of shapes the repositories need and
// nothing more.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and the positional args bound so far.
type writer struct {
	strings.Builder
	args []any
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.WriteByte('$')
	w.WriteString(strconv.Itoa(len(w.args)))
}

// raw writes expr, binding one arg for every '?' in order. Extra '?' are kept
// verbatim.
func (w *writer) raw(expr string, args []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.WriteByte(expr[i])
	}
}

func (w *writer) list(prefix string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.WriteString(prefix)
	w.WriteString(strings.Join(parts, ", "))
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		c.write(w)
	}
}

type Condition interface {
	write(w *writer)
}

type condFunc func(w *writer)

func (f condFunc) write(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return condFunc(func(w *writer) {
		w.WriteString(column)
		w.WriteString(" = ")
		w.bind(value)
	})
}

// In renders "column IN (...)"; an empty set matches nothing.
func In[T any](column string, values []T) Condition {
	return condFunc(func(w *writer) {
		if len(values) == 0 {
			w.WriteString("1=0")
			return
		}
		w.WriteString(column)
		w.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				w.WriteString(", ")
			}
			w.bind(v)
		}
		w.WriteByte(')')
	})
}

// Expr is a free-form predicate using '?' for its args.
func Expr(expr string, args ...any) Condition {
	return condFunc(func(w *writer) { w.raw(expr, args) })
}

// EqLiteral inlines a quoted constant, for status values known at compile time.
func EqLiteral(column, value string) Condition {
	return condFunc(func(w *writer) {
		w.WriteString(column)
		w.WriteString(" = '")
		w.WriteString(strings.ReplaceAll(value, "'", "''"))
		w.WriteByte('\'')
	})
}

type SelectBuilder struct {
	columns   []string
	table     string
	joins     []string
	where     []Condition
	groupBy   []string
	orderBy   []string
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) LeftJoin(clause string) *SelectBuilder {
	b.joins = append(b.joins, "LEFT JOIN "+clause)
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// ForUpdate appends FOR UPDATE so the selected rows stay locked until the
// enclosing transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.list("SELECT ", b.columns)
	w.WriteString(" FROM ")
	w.WriteString(b.table)
	for _, j := range b.joins {
		w.WriteByte(' ')
		w.WriteString(j)
	}
	w.where(b.where)
	w.list(" GROUP BY ", b.groupBy)
	w.list(" ORDER BY ", b.orderBy)
	if b.forUpdate {
		w.WriteString(" FOR UPDATE")
	}
	return w.String(), w.args, nil
}

type InsertBuilder struct {
	table      string
	columns    []string
	rows       [][]any
	suffix     string
	suffixArgs []any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends ON CONFLICT / RETURNING text; '?' binds args.
func (b *InsertBuilder) Suffix(sql string, args ...any) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	b.suffixArgs = args
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.WriteString("INSERT INTO ")
	w.WriteString(b.table)
	w.WriteString(" (")
	w.WriteString(strings.Join(b.columns, ", "))
	w.WriteString(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				w.WriteString(", ")
			}
			w.bind(v)
		}
		w.WriteByte(')')
	}
	if b.suffix != "" {
		w.WriteByte(' ')
		w.raw(b.suffix, b.suffixArgs)
	}
	return w.String(), w.args, nil
}

type UpdateBuilder struct {
	table     string
	sets      []Condition
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Eq(column, value))
	return b
}

// SetExpr assigns a SQL expression such as NOW() or "seats_approved + ?".
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, Expr(column+" = "+expr, args...))
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append(b.returning, columns...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w writer
	w.WriteString("UPDATE ")
	w.WriteString(b.table)
	w.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		s.write(&w)
	}
	w.where(b.where)
	w.list(" RETURNING ", b.returning)
	return w.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	// refuse to wipe a table by accident
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete from %s requires a condition", b.table)
	}

	var w writer
	w.WriteString("DELETE FROM ")
	w.WriteString(b.table)
	w.where(b.where)
	return w.String(), w.args, nil
}
