package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/false-lang/falsec/ast"
)

// leaf is a tiny constructor helper to keep test literals short.
func leaf(k ast.Kind) ast.Node { return ast.Node{Kind: k} }

func diffNodes(t *testing.T, got, want []ast.Node) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(ast.Node{}, "Line", "Col")); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSimpleArithmetic(t *testing.T) {
	got, err := New("1 2+.").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.Node{
		{Kind: ast.Integer, Value: 1},
		{Kind: ast.Integer, Value: 2},
		leaf(ast.Plus),
		leaf(ast.PrintInt),
	}
	diffNodes(t, got, want)
}

func TestParseVariableAssignment(t *testing.T) {
	got, err := New("10 a: a; .").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.Node{
		{Kind: ast.Integer, Value: 10},
		{Kind: ast.Variable, Letter: 'a'},
		leaf(ast.SetVar),
		{Kind: ast.Variable, Letter: 'a'},
		leaf(ast.GetVar),
		leaf(ast.PrintInt),
	}
	diffNodes(t, got, want)
}

func TestParseNestedQuote(t *testing.T) {
	got, err := New("[ 1 [ 2 ] ! ] !").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.Node{
		{Kind: ast.Quote, Children: []ast.Node{
			{Kind: ast.Integer, Value: 1},
			{Kind: ast.Quote, Children: []ast.Node{
				{Kind: ast.Integer, Value: 2},
			}},
			leaf(ast.Execute),
		}},
		leaf(ast.Execute),
	}
	diffNodes(t, got, want)
}

func TestParseString(t *testing.T) {
	got, err := New(`"Hello, World!"`).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.Node{{Kind: ast.String, Text: "Hello, World!"}}
	diffNodes(t, got, want)
}

func TestParseFlushIsDropped(t *testing.T) {
	got, err := New("1 B 2").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.Node{
		{Kind: ast.Integer, Value: 1},
		{Kind: ast.Integer, Value: 2},
	}
	diffNodes(t, got, want)
}

func TestParseUnterminatedQuote(t *testing.T) {
	_, err := New("[ 1 2 +").Parse()
	if err == nil {
		t.Fatalf("expected an error for an unterminated '[', got none")
	}
}

func TestParseAsmIsRejected(t *testing.T) {
	_, err := New("`7").Parse()
	if err == nil {
		t.Fatalf("expected an error for an asm form, got none")
	}
}

func TestParseAsmMissingShort(t *testing.T) {
	_, err := New("`").Parse()
	if err == nil {
		t.Fatalf("expected a syntax error for a bare asm token, got none")
	}
}

func TestParseInvalidLexerErrorPropagates(t *testing.T) {
	_, err := New(`{unterminated`).Parse()
	if err == nil {
		t.Fatalf("expected the lexer's unclosed-comment error to propagate")
	}
}

func TestParseCountdownLoop(t *testing.T) {
	// [ $ 0 > ] [ $ . 1 - ] #
	got, err := New("[ $ 0 > ] [ $ . 1 - ] #").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.Node{
		{Kind: ast.Quote, Children: []ast.Node{
			leaf(ast.Dup), {Kind: ast.Integer, Value: 0}, leaf(ast.GreaterThan),
		}},
		{Kind: ast.Quote, Children: []ast.Node{
			leaf(ast.Dup), leaf(ast.PrintInt), {Kind: ast.Integer, Value: 1}, leaf(ast.Minus),
		}},
		leaf(ast.While),
	}
	diffNodes(t, got, want)
}
