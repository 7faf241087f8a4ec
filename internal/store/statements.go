package store

import "strings"

// Field is a single column/value pair in a write statement. Column names are
// trusted identifiers supplied by code, never by request input.
type Field struct {
	Column string
	Value  any
}

// Fields is an ordered set of columns a statement may touch. Each entity
// enumerates its permitted columns explicitly, so a stray form field can
// never reach a statement.
type Fields []Field

// BuildInsert assembles a parameterized INSERT statement for the given table
// and field set. Placeholders and returned values follow field order.
// The field set must not be empty.
func BuildInsert(table string, fields Fields) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")

	values := make([]any, 0, len(fields))
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Column)
		values = append(values, f.Value)
	}

	b.WriteString(") VALUES (")
	for i := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("?")
	}
	b.WriteString(")")

	return b.String(), values
}

// BuildUpdate assembles the SET portion of a parameterized UPDATE statement.
// The caller must append its own WHERE clause and parameters; the builder
// never scopes the update to a row. The field set must not be empty.
func BuildUpdate(table string, fields Fields) (string, []any) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")

	values := make([]any, 0, len(fields))
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Column)
		b.WriteString(" = ?")
		values = append(values, f.Value)
	}

	return b.String(), values
}
