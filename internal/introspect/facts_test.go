package introspect_test

import (
	"testing"

	"docsniff/internal/introspect"
	"docsniff/internal/lexer"
	"docsniff/internal/source"
	"docsniff/internal/token"
)

func lex(t *testing.T, src string) *token.View {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("facts.php", []byte(src))
	return lexer.Tokenize(fs.Get(id), lexer.Options{})
}

func TestFunctionFacts(t *testing.T) {
	src := `<?php
namespace App;

final class Service extends Base {
    public function __construct(private readonly Repo $repo, #[Inject] array $opts = ['a' => 1]) {}

    abstract protected function &load(int|string $id, (A&B)|null &$out, Foo ...$rest);

    public static function make(callable $cb = null): static {
        return new static(fn($x) => $x);
    }
}

function helper(&$ref, ...$args) { return 1; }
`
	v := lex(t, src)
	fns := v.Positions(token.KwFunction)
	if len(fns) != 4 {
		t.Fatalf("expected 4 functions, got %d", len(fns))
	}

	type param struct {
		name            string
		byRef, variadic bool
	}
	tests := []struct {
		name     string
		owner    string
		hasOwner bool
		ctor     bool
		params   []param
		hasBody  bool
	}{
		{"__construct", "Service", true, true, []param{{"$repo", false, false}, {"$opts", false, false}}, true},
		{"load", "Service", true, false, []param{{"$id", false, false}, {"$out", true, false}, {"$rest", false, true}}, false},
		{"make", "Service", true, false, []param{{"$cb", false, false}}, true},
		{"helper", "", false, false, []param{{"$ref", true, false}, {"$args", false, true}}, true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := introspect.Function(v, fns[i])
			if f.Name != tt.name {
				t.Fatalf("name: want %q, got %q", tt.name, f.Name)
			}
			if f.EnclosingType != tt.owner || f.HasEnclosingType != tt.hasOwner {
				t.Fatalf("owner: want %q/%v, got %q/%v", tt.owner, tt.hasOwner, f.EnclosingType, f.HasEnclosingType)
			}
			if f.IsConstructorOrDestructor != tt.ctor {
				t.Fatalf("ctor flag: want %v", tt.ctor)
			}
			if f.Body.OK != tt.hasBody {
				t.Fatalf("body: want %v, got %+v", tt.hasBody, f.Body)
			}
			if len(f.Params) != len(tt.params) {
				t.Fatalf("params: want %d, got %+v", len(tt.params), f.Params)
			}
			for j, p := range tt.params {
				got := f.Params[j]
				if got.Name != p.name || got.ByRef != p.byRef || got.Variadic != p.variadic {
					t.Errorf("param %d: want %+v, got %+v", j, p, got)
				}
			}
		})
	}
}

func TestBodyRangeBrackets(t *testing.T) {
	v := lex(t, "<?php function f() { if (true) { return; } }")
	f := introspect.Function(v, v.Positions(token.KwFunction)[0])
	if !f.Body.OK {
		t.Fatal("expected a body")
	}
	if v.Kind(f.Body.Start) != token.LBrace || v.Kind(f.Body.End) != token.RBrace {
		t.Fatalf("unexpected body range %+v", f.Body)
	}
	if f.Body.End != v.Len()-1 {
		t.Fatalf("body must end at the outer brace, got %d of %d", f.Body.End, v.Len())
	}
}

func TestMalformedDeclaration(t *testing.T) {
	v := lex(t, "<?php function")
	f := introspect.Function(v, v.Positions(token.KwFunction)[0])
	if f.Name != "" || len(f.Params) != 0 || f.Body.OK {
		t.Fatalf("expected empty facts, got %+v", f)
	}
	if got := introspect.Function(v, 100); got.Name != "" {
		t.Fatal("out of range position must yield empty facts")
	}
}
