// Package compiler contains the core of the FALSE-to-LLVM-IR compiler.
//
// In brief we go through a two-step process, where the teacher's
// math-compiler had three:
//
//  1. Parse the source into an AST (the lexer is driven internally by
//     the parser, one token of lookahead at a time).
//
//  2. Lower the AST into LLVM textual IR, one self-contained module.
//
// There is no separate "internal form" step here the way the teacher
// had one: the AST itself already is the form the generator walks,
// since (unlike a flat RPN expression) FALSE programs nest.
package compiler

import (
	"github.com/false-lang/falsec/ast"
	"github.com/false-lang/falsec/parser"
)

// Compiler holds our object-state.
type Compiler struct {
	// debug holds a flag to decide if debugging "stuff" is generated
	// in the output IR.
	debug bool

	// source holds the FALSE program text being compiled.
	source string

	// tree caches the parsed AST once Parse has run, so a caller that
	// wants both the tree (e.g. to print it) and the compiled output
	// doesn't pay to parse twice.
	tree   []ast.Node
	parsed bool
}

// New creates a new compiler, given the FALSE program as input.
func New(input string) *Compiler {
	return &Compiler{source: input}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Parse runs the parser (and, transitively, the lexer) over the
// source and caches the resulting AST. It is exposed publicly so a
// driver can inspect the tree (e.g. cmd/falsec's --print-ast) without
// forcing a full Compile.
func (c *Compiler) Parse() ([]ast.Node, error) {
	if c.parsed {
		return c.tree, nil
	}

	tree, err := parser.New(c.source).Parse()
	if err != nil {
		return nil, err
	}

	c.tree = tree
	c.parsed = true
	return c.tree, nil
}

// Compile converts the input program into a complete LLVM IR module,
// as textual .ll source.
func (c *Compiler) Compile() (string, error) {
	tree, err := c.Parse()
	if err != nil {
		return "", err
	}

	gen := newGenerator(c.debug)
	return gen.Generate(tree)
}
