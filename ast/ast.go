// Package ast defines the abstract syntax tree produced by the parser.
//
// Node is a single tagged struct covering every AST kind (spec.md §9,
// "Tagged variants over inheritance"), rather than an interface
// hierarchy: every kind but Quote/Variable/String/Integer carries no
// payload, and Quote's payload is simply a child sequence, so one
// struct with a Kind discriminator is both simpler and lets the code
// generator's structural-equality dedup (see compiler/generator.go)
// compare trees with a single general-purpose deep comparison rather
// than a per-type Comparer.
package ast

// Kind identifies the variant of a Node. Every symbolic token.Kind
// except OpenBracket/CloseBracket (consumed structurally by the
// parser) and Flush (dropped) has a same-named AST Kind; Asm is
// rejected at parse time and never reaches an AST node.
type Kind string

const (
	Variable Kind = "Variable"
	String   Kind = "String"
	Integer  Kind = "Integer"
	Quote    Kind = "Quote"

	GetVar      Kind = "GetVar"
	SetVar      Kind = "SetVar"
	Dup         Kind = "Dup"
	Discard     Kind = "Discard"
	Swap        Kind = "Swap"
	Rotate      Kind = "Rotate"
	Take        Kind = "Take"
	Plus        Kind = "Plus"
	Minus       Kind = "Minus"
	Mul         Kind = "Mul"
	Div         Kind = "Div"
	Negate      Kind = "Negate"
	BitAnd      Kind = "BitAnd"
	BitOr       Kind = "BitOr"
	BitInvert   Kind = "BitInvert"
	Equal       Kind = "Equal"
	GreaterThan Kind = "GreaterThan"
	Execute     Kind = "Execute"
	ExecuteIf   Kind = "ExecuteIf"
	While       Kind = "While"
	Getc        Kind = "Getc"
	Putc        Kind = "Putc"
	PrintInt    Kind = "PrintInt"
)

// Node is one element of the AST: either a leaf opcode, a literal, or
// a Quote wrapping a nested statement sequence.
type Node struct {
	Kind Kind

	Letter byte   // meaningful only when Kind == Variable
	Text   string // meaningful only when Kind == String
	Value  int32  // meaningful only when Kind == Integer

	Children []Node // meaningful only when Kind == Quote

	Line int // source position of the node's leading token, for error context
	Col  int
}
