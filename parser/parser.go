// Package parser implements the FALSE recursive-descent parser.
//
// The Parser consumes the lexer's token stream with one token of
// lookahead and builds an AST for spec.md §4.2's grammar. Quote nesting
// is tracked with an explicit stack of frames (see Parser.frames)
// rather than by recursive calls:
//
//	Program    := Statement*
//	Statement  := Atom | Quote
//	Quote      := '[' Statement* ']'
//	Atom       := Variable | String | Integer | one of the primitive op tokens
package parser

import (
	"fmt"
	"io"

	"github.com/false-lang/falsec/ast"
	"github.com/false-lang/falsec/lexer"
	"github.com/false-lang/falsec/stack"
	"github.com/false-lang/falsec/token"
)

// frame accumulates the statement sequence for one nesting level
// (the top level, or one open '[') while it is being built.
type frame struct {
	stmts    []ast.Node
	quoteTag ast.Node // the Quote node being built; zero at the top level
}

// Parser holds our object-state.
type Parser struct {
	lex *lexer.Lexer

	tok   token.Token // the current lookahead token
	atEOF bool        // true once the lookahead has been exhausted

	// frames tracks one entry per currently-open '[', plus the
	// top-level frame. Pushing/popping it on OpenBracket/CloseBracket
	// is how nested quotations are built without relying on Go's own
	// call stack to remember where each bracket's statement list
	// lives (spec.md §9's "arena + integer handle, or a plain list"
	// note applies to hoisting; here the same shape tracks bracket
	// nesting during parsing).
	frames *stack.Stack[frame]
}

// New creates a Parser over the given source text.
func New(input string) *Parser {
	p := &Parser{lex: lexer.New(input), frames: stack.New[frame]()}
	return p
}

// Parse consumes the whole token stream and returns the top-level
// statement sequence, or the first parse/lex error encountered.
func (p *Parser) Parse() ([]ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	p.frames.Push(frame{})

	for {
		if p.atEOF {
			top, _ := p.frames.Pop()
			if p.frames.Len() > 0 {
				return nil, fmt.Errorf("unexpected end of input: unterminated '['")
			}
			return top.stmts, nil
		}

		if p.tok.Kind == token.CloseBracket {
			closed, _ := p.frames.Pop()

			if p.frames.Empty() {
				// A stray ']' at the top level simply terminates
				// parsing, per spec.md §4.2; the top-level frame's
				// statements parsed so far are returned.
				return closed.stmts, nil
			}

			if err := p.advance(); err != nil {
				return nil, err
			}

			quote := closed.quoteTag
			quote.Children = closed.stmts

			parent, _ := p.frames.Pop()
			parent.stmts = append(parent.stmts, quote)
			p.frames.Push(parent)
			continue
		}

		node, opened, skip, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if skip {
			// Flush ('B'): recognized and dropped, no AST node emitted.
			continue
		}
		if opened {
			// node is a half-built Quote tag (Line/Col only); push a
			// fresh frame to accumulate its body, to be closed above.
			p.frames.Push(frame{quoteTag: node})
			continue
		}

		top, _ := p.frames.Pop()
		top.stmts = append(top.stmts, node)
		p.frames.Push(top)
	}
}

// advance pulls the next lookahead token from the lexer.
func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err == io.EOF {
		p.atEOF = true
		p.tok = token.Token{}
		return nil
	}
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseStatement parses a single Atom, or begins a Quote, or
// recognizes-and-drops a Flush.
//
// When it begins a Quote (having consumed the '[') it returns
// opened=true and node holding only the Quote's source position; the
// caller is responsible for pushing a new frame and later filling in
// Children once the matching ']' is seen. When it consumes a Flush it
// returns skip=true and no node.
func (p *Parser) parseStatement() (node ast.Node, opened bool, skip bool, err error) {
	tok := p.tok
	line, col := tok.Line, tok.Col

	switch tok.Kind {

	case token.OpenBracket:
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		return ast.Node{Kind: ast.Quote, Line: line, Col: col}, true, false, nil

	case token.CloseBracket:
		// Unreachable: Parse's main loop consumes CloseBracket itself.
		return ast.Node{}, false, false, fmt.Errorf("unexpected ']'")

	case token.Flush:
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		return ast.Node{}, false, true, nil

	case token.Asm:
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		if p.atEOF || p.tok.Kind != token.Integer {
			return ast.Node{}, false, false, fmt.Errorf("syntax error: expected a short")
		}
		return ast.Node{}, false, false, fmt.Errorf("assembly not supported")

	case token.Variable:
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		return ast.Node{Kind: ast.Variable, Letter: tok.Letter, Line: line, Col: col}, false, false, nil

	case token.String:
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		return ast.Node{Kind: ast.String, Text: tok.Text, Line: line, Col: col}, false, false, nil

	case token.Integer:
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		return ast.Node{Kind: ast.Integer, Value: tok.Value, Line: line, Col: col}, false, false, nil

	default:
		kind, ok := opKinds[tok.Kind]
		if !ok {
			return ast.Node{}, false, false, fmt.Errorf("syntax error: unexpected token %q at %d:%d", tok.Kind, line, col)
		}
		if err := p.advance(); err != nil {
			return ast.Node{}, false, false, err
		}
		return ast.Node{Kind: kind, Line: line, Col: col}, false, false, nil
	}
}

// opKinds maps every payload-free primitive token.Kind (other than
// OpenBracket/CloseBracket/Flush/Asm, all handled structurally above)
// to its identically-named AST Kind.
var opKinds = map[token.Kind]ast.Kind{
	token.GetVar:      ast.GetVar,
	token.SetVar:      ast.SetVar,
	token.Dup:         ast.Dup,
	token.Discard:     ast.Discard,
	token.Swap:        ast.Swap,
	token.Rotate:      ast.Rotate,
	token.Take:        ast.Take,
	token.Plus:        ast.Plus,
	token.Minus:       ast.Minus,
	token.Mul:         ast.Mul,
	token.Div:         ast.Div,
	token.Negate:      ast.Negate,
	token.BitAnd:      ast.BitAnd,
	token.BitOr:       ast.BitOr,
	token.BitInvert:   ast.BitInvert,
	token.Equal:       ast.Equal,
	token.GreaterThan: ast.GreaterThan,
	token.Execute:     ast.Execute,
	token.ExecuteIf:   ast.ExecuteIf,
	token.While:       ast.While,
	token.Getc:        ast.Getc,
	token.Putc:        ast.Putc,
	token.PrintInt:    ast.PrintInt,
}
