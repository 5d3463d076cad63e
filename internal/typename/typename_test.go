package typename

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"integer", "int"},
		{"boolean", "bool"},
		{"int", "int"},
		{"bool", "bool"},
		{"Integer", "int"},
		{"BOOL", "bool"},
		{"String", "string"},
		{"MIXED", "mixed"},
		{"double", "float"},
		{"Void", "void"},
		{"integer[]", "int[]"},
		{"Foo[]", "Foo[]"},
		{"?String", "?string"},
		{"\\Foo\\Bar", "\\Foo\\Bar"},
		{"DateTime", "DateTime"},
		{"array()", "array"},
		{"array<int, string>", "array<int, string>"},
		{"", ""},
		{"[]", "[]"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalList(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"integer", "int"},
		{"int|null", "int|null"},
		{"integer|int|NULL", "int|null"},
		{"boolean|bool|Foo", "bool|Foo"},
		{"string|", "string|"},
		{"Foo|foo", "Foo|foo"},
	}
	for _, tt := range tests {
		if got := CanonicalList(tt.in); got != tt.want {
			t.Errorf("CanonicalList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalIsIdempotent(t *testing.T) {
	inputs := []string{
		"integer", "boolean", "Integer|BOOLEAN|int", "?Double[]", "real|REAL",
		"Foo\\Bar|null|NULL", "array()|array", "mixed|Mixed[]", "", "|", "?", "??int",
		"String[][]", "int|integer|bool|boolean|float|double",
	}
	for _, in := range inputs {
		once := CanonicalList(in)
		twice := CanonicalList(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
