package lexer_test

import (
	"strings"
	"testing"

	"docsniff/internal/diag"
	"docsniff/internal/lexer"
	"docsniff/internal/source"
	"docsniff/internal/testkit"
	"docsniff/internal/token"
)

// tokenizeString лексит строку как виртуальный файл
func tokenizeString(t *testing.T, src string) (*token.View, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(src))
	bag := diag.NewBag(16)
	view := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return view, bag
}

// significant drops whitespace so tables stay readable.
func significant(v *token.View) []token.Token {
	var out []token.Token
	for _, tok := range v.Tokens {
		if tok.Kind == token.Whitespace || tok.Kind == token.DocWhitespace {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "inline html then php",
			src:  "<html><?php echo 1; ?>tail",
			want: []token.Kind{token.InlineHTML, token.OpenTag, token.Ident, token.IntLit, token.Semicolon, token.CloseTag, token.InlineHTML},
		},
		{
			name: "function with params",
			src:  "<?php function f(int &$a, ...$b) {}",
			want: []token.Kind{
				token.OpenTag, token.KwFunction, token.Ident, token.LParen, token.Ident, token.Amp, token.Variable,
				token.Comma, token.Ellipsis, token.Variable, token.RParen, token.LBrace, token.RBrace,
			},
		},
		{
			name: "keywords after arrow are names",
			src:  "<?php $a->class; Foo::function(); $b?->new;",
			want: []token.Kind{
				token.OpenTag, token.Variable, token.Arrow, token.Ident, token.Semicolon,
				token.Ident, token.ColonColon, token.Ident, token.LParen, token.RParen, token.Semicolon,
				token.Variable, token.Arrow, token.Ident, token.Semicolon,
			},
		},
		{
			name: "yield from",
			src:  "<?php yield  from $g; yield $x;",
			want: []token.Kind{token.OpenTag, token.KwYieldFrom, token.Variable, token.Semicolon, token.KwYield, token.Variable, token.Semicolon},
		},
		{
			name: "enum needs a name",
			src:  "<?php enum Suit {} $enum = enum;",
			want: []token.Kind{
				token.OpenTag, token.KwEnum, token.Ident, token.LBrace, token.RBrace,
				token.Variable, token.Assign, token.Ident, token.Semicolon,
			},
		},
		{
			name: "comments",
			src:  "<?php // line\n# hash\n/* block */ #[Attr]",
			want: []token.Kind{token.OpenTag, token.Comment, token.Comment, token.Comment, token.AttrOpen, token.Ident, token.RBracket},
		},
		{
			name: "strings and numbers",
			src:  "<?php 'a\\'b' \"c\" 0x1F 1.5 .5 1e3 1_000",
			want: []token.Kind{token.OpenTag, token.StringLit, token.StringLit, token.IntLit, token.FloatLit, token.FloatLit, token.FloatLit, token.IntLit},
		},
		{
			name: "heredoc",
			src:  "<?php $x = <<<EOT\n  return 5;\n  EOT;\n",
			want: []token.Kind{token.OpenTag, token.Variable, token.Assign, token.Heredoc, token.Semicolon},
		},
		{
			name: "operators",
			src:  "<?php $a ??= $b <=> $c => ?:",
			want: []token.Kind{token.OpenTag, token.Variable, token.Op, token.Variable, token.Op, token.Variable, token.FatArrow, token.Question, token.Colon},
		},
		{
			name: "qualified names",
			src:  "<?php new \\Foo\\Bar();",
			want: []token.Kind{token.OpenTag, token.KwNew, token.Ident, token.LParen, token.RParen, token.Semicolon},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, bag := tokenizeString(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			got := kindsOf(significant(view))
			if len(got) != len(tt.want) {
				t.Fatalf("kinds mismatch:\nwant %v\ngot  %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kind %d: want %v, got %v (all: %v)", i, tt.want[i], got[i], got)
				}
			}
		})
	}
}

func TestDocCommentSubTokens(t *testing.T) {
	src := "<?php\n/**\n * Summary.\n *\n * @param int $a  First.\n * @return void\n */\nfunction f($a) {}\n"
	view, _ := tokenizeString(t, src)

	var texts []string
	for _, tok := range view.Tokens {
		switch tok.Kind {
		case token.DocOpen, token.DocClose, token.DocStar, token.DocTag, token.DocString:
			texts = append(texts, tok.Kind.String()+":"+tok.Text)
		}
	}
	want := []string{
		"DocOpen:/**",
		"DocStar:*", "DocString:Summary.",
		"DocStar:*",
		"DocStar:*", "DocTag:@param", "DocString:int $a  First.",
		"DocStar:*", "DocTag:@return", "DocString:void",
		"DocClose:*/",
	}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Fatalf("doc tokens:\nwant %v\ngot  %v", want, texts)
	}

	opener := view.Positions(token.DocOpen)[0]
	closer := view.Positions(token.DocClose)[0]
	if view.Tokens[opener].Pair != closer || view.Tokens[closer].Pair != opener {
		t.Fatalf("doc pair not linked: %d <-> %d", view.Tokens[opener].Pair, view.Tokens[closer].Pair)
	}
	tags := view.Tokens[opener].Tags
	if len(tags) != 2 || view.Tokens[tags[0]].Text != "@param" || view.Tokens[tags[1]].Text != "@return" {
		t.Fatalf("unexpected tags %v", tags)
	}
	if view.Tokens[closer].Line != 7 {
		t.Fatalf("closer line: want 7, got %d", view.Tokens[closer].Line)
	}
	fn := view.Positions(token.KwFunction)[0]
	if view.Tokens[fn].Line != 8 || view.Tokens[fn].Col != 1 {
		t.Fatalf("function position: got %d:%d", view.Tokens[fn].Line, view.Tokens[fn].Col)
	}
}

func TestDocCommentSingleLine(t *testing.T) {
	view, _ := tokenizeString(t, "<?php /** @var int $x */")
	got := kindsOf(significant(view))
	want := []token.Kind{token.OpenTag, token.DocOpen, token.DocTag, token.DocString, token.DocClose}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestEmptyBlockCommentIsNotDoc(t *testing.T) {
	view, _ := tokenizeString(t, "<?php /**/ $a;")
	if len(view.Positions(token.DocOpen)) != 0 {
		t.Fatal("/**/ must be a plain comment")
	}
	if len(view.Positions(token.Comment)) != 1 {
		t.Fatal("expected one comment token")
	}
}

func TestScopesAndClosures(t *testing.T) {
	src := `<?php
class A {
    abstract function g();
    public function f($x) {
        $c = function ($y) use ($x) { return $y; };
        $d = function &() {};
        return fn($z) => $z;
    }
}
`
	view, _ := tokenizeString(t, src)

	fns := view.Positions(token.KwFunction)
	if len(fns) != 2 {
		t.Fatalf("expected 2 named functions, got %d", len(fns))
	}
	if g := view.Tokens[fns[0]]; g.ScopeOpen != -1 || g.ScopeClose != -1 {
		t.Fatalf("abstract function must have no scope, got %d..%d", g.ScopeOpen, g.ScopeClose)
	}
	f := view.Tokens[fns[1]]
	if view.Kind(f.ScopeOpen) != token.LBrace || view.Kind(f.ScopeClose) != token.RBrace {
		t.Fatalf("f scope not linked: %d..%d", f.ScopeOpen, f.ScopeClose)
	}

	closures := view.Positions(token.Closure)
	if len(closures) != 2 {
		t.Fatalf("expected 2 closures, got %d", len(closures))
	}
	c := view.Tokens[closures[0]]
	if c.ScopeOpen <= closures[0] || c.ScopeClose >= f.ScopeClose {
		t.Fatalf("closure scope %d..%d not nested in f", c.ScopeOpen, c.ScopeClose)
	}
	// тело замыкания начинается после use (...)
	useIdx := view.FindNext(token.NewSet(token.KwUse), closures[0], -1, false)
	if c.ScopeOpen < useIdx {
		t.Fatalf("closure scope starts before use clause")
	}

	class := view.Tokens[view.Positions(token.KwClass)[0]]
	if view.Kind(class.ScopeOpen) != token.LBrace || class.ScopeClose <= f.ScopeClose {
		t.Fatalf("class scope not linked: %d..%d", class.ScopeOpen, class.ScopeClose)
	}
}

func TestUnterminatedReports(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"string", "<?php 'abc", diag.LexUnterminatedString},
		{"block comment", "<?php /* abc", diag.LexUnterminatedComment},
		{"doc comment", "<?php /** abc", diag.LexUnterminatedComment},
		{"heredoc", "<?php <<<EOT\nabc\n", diag.LexUnterminatedHeredoc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := tokenizeString(t, tt.src)
			if bag.Len() != 1 {
				t.Fatalf("expected one diagnostic, got %d", bag.Len())
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("want %v, got %v", tt.code, got)
			}
		})
	}
}

func TestTokensCoverInput(t *testing.T) {
	src := "<?php\n/**\n * @param string $a\n */\nfunction f($a) { return \"x\"; }\n?>\n"
	view, _ := tokenizeString(t, src)
	var b strings.Builder
	for _, tok := range view.Tokens {
		b.WriteString(tok.Text)
	}
	if b.String() != src {
		t.Fatalf("concatenated tokens differ from input:\n%q\n%q", b.String(), src)
	}
}

func TestViewInvariants(t *testing.T) {
	sources := []string{
		"",
		"plain html only\n",
		"<?php\n/** @return int */\nfunction f() { $g = function () use ($x) { return 1; }; }\n",
		"<?php\nabstract class A {\n  /**\n   * @param int $a\n   * @throws X\n   */\n  abstract function m($a);\n}\n",
		"<?php\n/**\n * @param string $s\n",
		"<?php\nfunction f() { if (1) { return [1, 2]; }\n",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.php", []byte(src)))
		view := lexer.Tokenize(file, lexer.Options{})
		if err := testkit.CheckViewInvariants(view, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}
