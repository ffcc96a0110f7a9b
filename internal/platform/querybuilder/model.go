package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds a single-row insert from the db tags of a struct.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels builds a multi-row insert; every model must share the first
// model's type.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}
	b := InsertInto(table).Suffix(suffix)
	var first reflect.Type
	for i, m := range models {
		cols, vals, typ, err := modelColumns(m)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			first = typ
			b.Columns(cols...)
		} else if typ != first {
			return "", nil, fmt.Errorf("model %d: type %s differs from %s", i, typ, first)
		}
		b.Values(vals...)
	}
	return b.ToSQL()
}

// Columns lists the db tag names of a struct type, for SELECT lists.
func Columns(model any) []string {
	cols, _, _, err := modelColumns(model)
	if err != nil {
		return nil
	}
	return cols
}

func modelColumns(model any) ([]string, []any, reflect.Type, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, typ, nil
}
