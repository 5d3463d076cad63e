package sniff_test

import (
	"reflect"
	"strings"
	"testing"

	"docsniff/internal/diag"
	"docsniff/internal/sniff"
)

// fn wraps @param lines into a documented void function with the given signature.
func fn(sig string, params ...string) string {
	var b strings.Builder
	b.WriteString("<?php\n/**\n * F.\n *\n")
	for _, p := range params {
		b.WriteString(" * " + p + "\n")
	}
	b.WriteString(" *\n * @return void\n */\nfunction f(" + sig + ")\n{\n}\n")
	return b.String()
}

func TestParamChecks(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     []diag.Code
		wantArgs [][]string
	}{
		{
			name: "clean aligned block",
			src:  fn("$a, $bb", "@param int $a  A.", "@param int $bb B."),
		},
		{
			name: "missing type",
			src:  fn("$x", "@param $x X."),
			want: []diag.Code{diag.MissingParamType},
		},
		{
			name: "empty tag",
			src:  fn("", "@param"),
			want: []diag.Code{diag.MissingParamType},
		},
		{
			name:     "missing name",
			src:      fn("$a", "@param int"),
			want:     []diag.Code{diag.MissingParamName, diag.MissingParamTag},
			wantArgs: [][]string{nil, {"$a"}},
		},
		{
			name: "missing comment",
			src:  fn("$a", "@param int $a"),
			want: []diag.Code{diag.MissingParamComment},
		},
		{
			name:     "type alternatives",
			src:      fn("$a", "@param integer|boolean $a A."),
			want:     []diag.Code{diag.IncorrectParamVarName, diag.IncorrectParamVarName},
			wantArgs: [][]string{{"int", "integer"}, {"bool", "boolean"}},
		},
		{
			name:     "name mismatch",
			src:      fn("$a", "@param int $b B."),
			want:     []diag.Code{diag.ParamNameNoMatch, diag.MissingParamTag},
			wantArgs: [][]string{{"$b", "$a"}, {"$a"}},
		},
		{
			name: "case mismatch on every tag",
			src:  fn("$ab, $cd", "@param int $AB A.", "@param int $CD C."),
			want: []diag.Code{
				diag.ParamNameNoCaseMatch, diag.ParamNameNoCaseMatch,
				diag.MissingParamTag, diag.MissingParamTag,
			},
			wantArgs: [][]string{{"$AB", "$ab"}, {"$CD", "$cd"}, {"$ab"}, {"$cd"}},
		},
		{
			name:     "duplicate alternatives",
			src:      fn("$a", "@param int|int $a A."),
			want:     []diag.Code{diag.IncorrectParamVarName},
			wantArgs: [][]string{{"int", "int|int"}},
		},
		{
			name:     "alias collapses into duplicate",
			src:      fn("$a", "@param int|integer $a A."),
			want:     []diag.Code{diag.IncorrectParamVarName},
			wantArgs: [][]string{{"int", "integer"}},
		},
		{
			name: "superfluous tag",
			src:  fn("$a", "@param int $a A.", "@param int $b B."),
			want: []diag.Code{diag.ExtraParamComment},
		},
		{
			name: "variadic markers",
			src: fn("string $sep, ...$parts",
				"@param string $sep      Separator.",
				"@param mixed  ...$parts Parts.",
				"@param mixed  $more,... More."),
		},
		{
			name: "variadic documented again",
			src:  fn("...$parts", "@param mixed $parts Parts.", "@param mixed $parts Again."),
		},
		{
			name: "by reference",
			src:  fn("array &$items", "@param array &$items Items."),
		},
		{
			name:     "spacing after name",
			src:      fn("$a, $bb", "@param int $a A.", "@param int $bb B."),
			want:     []diag.Code{diag.SpacingAfterParamName},
			wantArgs: [][]string{{"2", "1"}},
		},
		{
			name:     "alignment under",
			src:      fn("$a", "@param int $a First line", "  continues here."),
			want:     []diag.Code{diag.ParamCommentAlignment},
			wantArgs: [][]string{{"15", "3"}},
		},
		{
			name:     "alignment over",
			src:      fn("$a", "@param int $a First line", "                    continues here."),
			want:     []diag.Code{diag.ParamCommentAlignmentExceeded},
			wantArgs: [][]string{{"15", "21"}},
		},
		{
			name: "aligned continuation",
			src:  fn("$a", "@param int $a First line", "              continues here."),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validateOne(t, tt.src)
			got := codesOf(r)
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("codes = %v, want %v", got, tt.want)
			}
			for i, args := range tt.wantArgs {
				if args == nil {
					continue
				}
				if !reflect.DeepEqual(r.Diagnostics[i].Args, args) {
					t.Fatalf("%v args = %q, want %q", r.Diagnostics[i].Code, r.Diagnostics[i].Args, args)
				}
			}
		})
	}
}

func TestParamSeverities(t *testing.T) {
	r := validateOne(t, fn("$a, $b", "@param int $A A.", "@param int $c C."))
	want := []struct {
		code    diag.Code
		sev     diag.Severity
		fixable bool
	}{
		{diag.ParamNameNoCaseMatch, diag.SevWarning, true},
		{diag.ParamNameNoMatch, diag.SevWarning, true},
		{diag.MissingParamTag, diag.SevError, false},
		{diag.MissingParamTag, diag.SevError, false},
	}
	if len(r.Diagnostics) != len(want) {
		t.Fatalf("codes = %v", codesOf(r))
	}
	for i, d := range r.Diagnostics {
		w := want[i]
		if d.Code != w.code || d.Severity != w.sev || d.Fixable != w.fixable {
			t.Fatalf("diagnostic %d = %+v, want %v", i, d, w)
		}
	}
}

func TestSingleSpacingPolicy(t *testing.T) {
	src := fn("$a, $bb", "@param int $a  A.", "@param int $bb B.")
	_, results := validateAll(t, src, sniff.Options{ParamSpacing: sniff.SpacingSingle})
	r := results[0]
	if got := codesOf(r); !reflect.DeepEqual(got, []diag.Code{diag.SpacingAfterParamName}) {
		t.Fatalf("codes = %v", got)
	}
	if args := r.Diagnostics[0].Args; !reflect.DeepEqual(args, []string{"1", "2"}) {
		t.Fatalf("args = %q", args)
	}
	fixed := applyAll(t, src, results)
	if !strings.Contains(fixed, " * @param int $a A.\n") {
		t.Fatalf("fixed source:\n%s", fixed)
	}
}

func TestComposedParamFix(t *testing.T) {
	src := fn("$value", "@param integer $Value Value.")
	_, results := validateAll(t, src, sniff.Options{})
	r := results[0]
	want := []diag.Code{diag.IncorrectParamVarName, diag.ParamNameNoCaseMatch, diag.MissingParamTag}
	if got := codesOf(r); !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v", got)
	}
	if len(r.Edits) != 1 || r.Edits[0].NewText != "int $value Value." {
		t.Fatalf("edits = %+v", r.Edits)
	}

	// после переименования параметр задокументирован
	fixed := applyAll(t, src, results)
	if got := codesOf(validateOne(t, fixed)); len(got) != 0 {
		t.Fatalf("codes after fix = %v\n%s", got, fixed)
	}
}

func TestDuplicateAlternativesFix(t *testing.T) {
	src := fn("$a", "@param int|int $a A.")
	_, results := validateAll(t, src, sniff.Options{})
	fixed := applyAll(t, src, results)
	if !strings.Contains(fixed, " * @param int $a A.\n") {
		t.Fatalf("fixed source:\n%s", fixed)
	}
}

func TestAlignmentMultibyteName(t *testing.T) {
	// описание начинается в 18-й экранной колонке, хотя в байтах в 19-й
	src := fn("$ü", "@param int $ü ünï", "  more.")
	_, results := validateAll(t, src, sniff.Options{})
	r := results[0]
	if got := codesOf(r); !reflect.DeepEqual(got, []diag.Code{diag.ParamCommentAlignment}) {
		t.Fatalf("codes = %v", got)
	}
	if args := r.Diagnostics[0].Args; !reflect.DeepEqual(args, []string{"15", "3"}) {
		t.Fatalf("args = %q", args)
	}
	fixed := applyAll(t, src, results)
	if !strings.Contains(fixed, " * @param int $ü ünï\n *               more.\n") {
		t.Fatalf("fixed source:\n%s", fixed)
	}
}

func TestFixerConverges(t *testing.T) {
	src := `<?php
class Foo
{
    /**
     * Does things.
     *
     * @param integer $Value   The value to use
     *        for the thing and more.
     * @param boolean $flag Flag.
     *
     * @return integer
     */
    public function run($value, $flag)
    {
        return 1;
    }

    /**
     * Other.
     *
     * @param int $a First line
     *   continues here.
     *
     * @return void
     */
    public function other($a)
    {
    }
}
`
	want := `<?php
class Foo
{
    /**
     * Does things.
     *
     * @param int $value The value to use
     *                   for the thing
     *                   and more.
     * @param bool $flag  Flag.
     *
     * @return int
     */
    public function run($value, $flag)
    {
        return 1;
    }

    /**
     * Other.
     *
     * @param int $a First line
     *               continues here.
     *
     * @return void
     */
    public function other($a)
    {
    }
}
`
	_, results := validateAll(t, src, sniff.Options{})
	fixable := 0
	for i := range results {
		fixable += results[i].Fixable()
	}
	if fixable == 0 {
		t.Fatal("expected fixable diagnostics")
	}

	fixed := applyAll(t, src, results)
	if fixed != want {
		t.Fatalf("fixed source:\n%s\nwant:\n%s", fixed, want)
	}

	_, again := validateAll(t, fixed, sniff.Options{})
	for _, r := range again {
		if r.Fixable() != 0 || len(r.Edits) != 0 {
			t.Fatalf("%s still fixable: %v", r.Name, codesOf(r))
		}
	}
}

func TestFixerConvergesOnTypeAndAlignment(t *testing.T) {
	// продолжение выровнено под старую ширину типа
	src := fn("$a", "@param integer $a First line", "                  continues here.")
	_, results := validateAll(t, src, sniff.Options{})
	want := []diag.Code{diag.IncorrectParamVarName, diag.ParamCommentAlignmentExceeded}
	if got := codesOf(results[0]); !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v", got)
	}
	fixed := applyAll(t, src, results)
	_, again := validateAll(t, fixed, sniff.Options{})
	if n := again[0].Fixable(); n != 0 {
		t.Fatalf("still fixable after one pass: %v\n%s", codesOf(again[0]), fixed)
	}
}
