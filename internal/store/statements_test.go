package store

import (
	"reflect"
	"testing"
)

func TestBuildInsert(t *testing.T) {
	fields := Fields{
		{"title", "Acme"},
		{"phone", nil},
		{"manager_id", int64(7)},
	}

	query, values := BuildInsert("customers", fields)

	want := "INSERT INTO customers (title, phone, manager_id) VALUES (?, ?, ?)"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if !reflect.DeepEqual(values, []any{"Acme", nil, int64(7)}) {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestBuildInsertSingleField(t *testing.T) {
	query, values := BuildInsert("partner_types", Fields{{"title", "Customer"}})

	want := "INSERT INTO partner_types (title) VALUES (?)"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(values) != 1 || values[0] != "Customer" {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestBuildInsertPlaceholderCountMatchesFields(t *testing.T) {
	fields := Fields{
		{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}, {"e", 5},
	}
	query, values := BuildInsert("t", fields)

	placeholders := 0
	for _, r := range query {
		if r == '?' {
			placeholders++
		}
	}
	if placeholders != len(fields) {
		t.Errorf("expected %d placeholders, got %d", len(fields), placeholders)
	}
	if len(values) != len(fields) {
		t.Errorf("expected %d values, got %d", len(fields), len(values))
	}
	for i, f := range fields {
		if values[i] != f.Value {
			t.Errorf("value %d: expected %v, got %v", i, f.Value, values[i])
		}
	}
}

func TestBuildUpdate(t *testing.T) {
	fields := Fields{
		{"title", "Acme"},
		{"full_name", nil},
	}

	prefix, values := BuildUpdate("customers", fields)

	want := "UPDATE customers SET title = ?, full_name = ?"
	if prefix != want {
		t.Errorf("expected %q, got %q", want, prefix)
	}
	if !reflect.DeepEqual(values, []any{"Acme", nil}) {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{"  ", nil},
		{"", nil},
		{"  x ", "x"},
		{"x", "x"},
		{5, 5},
		{int64(7), int64(7)},
		{nil, nil},
	}

	for _, tt := range tests {
		got := NormalizeValue(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
