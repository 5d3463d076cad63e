// Package typename canonicalizes the type names written in doc comments.
//
// Canonical forms are fixed points: Canonical(Canonical(t)) == Canonical(t)
// for every input, and the same holds for CanonicalList.
package typename

import "strings"

// pseudoTypes are the built-in names that are always spelled in lower case.
var pseudoTypes = map[string]struct{}{
	"mixed": {}, "void": {}, "self": {}, "static": {}, "parent": {},
	"object": {}, "array": {}, "callable": {}, "iterable": {}, "null": {},
	"false": {}, "true": {}, "string": {}, "float": {}, "resource": {},
	"never": {}, "int": {}, "bool": {},
}

// aliases map long or legacy spellings onto the canonical short name.
var aliases = map[string]string{
	"integer": "int",
	"boolean": "bool",
	"double":  "float",
	"real":    "float",
	"array()": "array",
}

// Canonical returns the canonical spelling of a single type name.
func Canonical(name string) string {
	switch name {
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	case "int", "bool":
		return name
	}
	return Suggest(name)
}

// Suggest resolves names other than the integer/boolean fast path:
// pseudo-types are lower-cased, a trailing "[]" and a leading "?" are kept,
// class-like and unrecognized names are returned unchanged.
func Suggest(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "?") {
		return "?" + Suggest(name[1:])
	}
	if base, ok := strings.CutSuffix(name, "[]"); ok && base != "" {
		return Suggest(base) + "[]"
	}
	lower := strings.ToLower(name)
	if alias, ok := aliases[lower]; ok {
		return alias
	}
	if _, ok := pseudoTypes[lower]; ok {
		return lower
	}
	return name
}

// Split returns the "|"-separated alternatives of a type list.
func Split(raw string) []string {
	return strings.Split(raw, "|")
}

// CanonicalList canonicalizes every alternative of raw, drops duplicates
// keeping the first occurrence and joins the result back with "|".
func CanonicalList(raw string) string {
	return strings.Join(CanonicalNames(raw), "|")
}

// CanonicalNames is CanonicalList before joining.
func CanonicalNames(raw string) []string {
	parts := Split(raw)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		c := Canonical(p)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Contains reports whether the canonical names include name.
func Contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
