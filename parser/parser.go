// Package parser turns a token stream into the ast.Program the expander
// consumes. It is a single-token-lookahead recursive-descent parser;
// WBF's grammar needs no operator-precedence climbing, since every
// production starts with an unambiguous leading token.
package parser

import (
	"fmt"

	"github.com/wbf-lang/wbfc/ast"
	"github.com/wbf-lang/wbfc/lexer"
	"github.com/wbf-lang/wbfc/token"
)

// Error is a syntax error produced while parsing, carrying the source span
// at which it was detected. Per spec.md §7, parse errors are surfaced
// verbatim from this collaborator; the expander never wraps or
// reinterprets them.
type Error struct {
	Msg string
	Sp  token.Span
}

func (e *Error) Error() string { return fmt.Sprintf("parse error at %s: %s", e.Sp, e.Msg) }

// Parse scans and parses src, returning the top-level sequence of
// instructions or the first syntax error encountered. Parsing aborts at
// the first error, matching the expander's own fail-fast behaviour
//.
func Parse(src []byte) (*ast.Program, error) {
	p := &parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var prog ast.Program
	for p.tok.Kind != lexer.EOF {
		instr, err := p.parseInstr()
		if err != nil {
			return nil, err
		}
		if instr != nil {
			prog.Instrs = append(prog.Instrs, instr)
		}
	}
	return &prog, nil
}

type parser struct {
	lex *lexer.Lexer
	tok lexer.Token
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return &Error{Msg: err.Error(), Sp: token.Span{Start: token.Pos(tok.Start), End: token.Pos(tok.End)}}
	}
	p.tok = tok
	return nil
}

func (p *parser) span(start int) token.Span {
	return token.Span{Start: token.Pos(start), End: token.Pos(p.tok.Start)}
}

func (p *parser) errorf(sp token.Span, format string, args ...interface{}) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Sp: sp}
}

// parseInstr parses exactly one instruction. It returns (nil, nil) only
// when a run of '+'/'-' or '>'/'<' nets to zero: per the AST invariant
// that Add/Move nodes are always non-zero, such a run contributes no node
// at all and parsing continues with the next token.
func (p *parser) parseInstr() (ast.Instruction, error) {
	switch p.tok.Kind {
	case lexer.Add:
		n, start, end := p.tok.Num, p.tok.Start, p.tok.End
		if err := p.advance(); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		return &ast.Add{N: n, Sp: token.Span{Start: token.Pos(start), End: token.Pos(end)}}, nil

	case lexer.Move:
		n, start, end := p.tok.Num, p.tok.Start, p.tok.End
		if err := p.advance(); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		return &ast.Move{N: n, Sp: token.Span{Start: token.Pos(start), End: token.Pos(end)}}, nil

	case lexer.Dot:
		sp := token.Span{Start: token.Pos(p.tok.Start), End: token.Pos(p.tok.End)}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.PutC{Sp: sp}, nil

	case lexer.Comma:
		// A leading comma in instruction position is always the GetC
		// instruction; a comma that follows a complete argument or parameter
		// is consumed separately, as a separator, by the call/param-list
		// parsers below.
		sp := token.Span{Start: token.Pos(p.tok.Start), End: token.Pos(p.tok.End)}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.GetC{Sp: sp}, nil

	case lexer.LBrack:
		return p.parseLoop()

	case lexer.Super:
		return p.parseSuperFunction()

	case lexer.Ident:
		return p.parseIdentOrCall()

	case lexer.Int:
		v, start, end := p.tok.IntVal, p.tok.Start, p.tok.End
		if err := p.advance(); err != nil {
			return nil, err
		}
		sp := token.Span{Start: token.Pos(start), End: token.Pos(end)}
		return &ast.InlineValue{Value: &ast.Integer{Value: v, Sp: sp}, Sp: sp}, nil

	case lexer.Str:
		s, start, end := p.tok.Lit, p.tok.Start, p.tok.End
		if err := p.advance(); err != nil {
			return nil, err
		}
		sp := token.Span{Start: token.Pos(start), End: token.Pos(end)}
		return &ast.InlineValue{Value: &ast.String{Value: s, Sp: sp}, Sp: sp}, nil

	default:
		return nil, p.errorf(token.Span{Start: token.Pos(p.tok.Start), End: token.Pos(p.tok.End)},
			"expected an instruction, got %s", p.tok.Kind)
	}
}

func (p *parser) parseLoop() (ast.Instruction, error) {
	start := p.tok.Start
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var body []ast.Instruction
	for p.tok.Kind != lexer.RBrack {
		if p.tok.Kind == lexer.EOF {
			return nil, p.errorf(p.span(start), "unterminated loop: missing ']'")
		}
		instr, err := p.parseInstr()
		if err != nil {
			return nil, err
		}
		if instr != nil {
			body = append(body, instr)
		}
	}
	end := p.tok.End
	if err := p.advance(); err != nil { // consume ']'
		return nil, err
	}
	return &ast.Loop{Body: body, Sp: token.Span{Start: token.Pos(start), End: token.Pos(end)}}, nil
}

func (p *parser) parseSuperFunction() (ast.Instruction, error) {
	start := p.tok.Start
	if err := p.advance(); err != nil { // consume 'super'
		return nil, err
	}
	if p.tok.Kind != lexer.Ident {
		return nil, p.errorf(p.span(start), "expected macro name after 'super', got %s", p.tok.Kind)
	}
	name := p.tok.Lit
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.Kind != lexer.LParen {
		return nil, p.errorf(p.span(start), "expected '(' after macro name %q, got %s", name, p.tok.Kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var params []string
	for p.tok.Kind != lexer.RParen {
		if p.tok.Kind != lexer.Ident {
			return nil, p.errorf(p.span(start), "expected parameter name, got %s", p.tok.Kind)
		}
		params = append(params, p.tok.Lit)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}

	if p.tok.Kind != lexer.LBrace {
		return nil, p.errorf(p.span(start), "expected '{' to open body of macro %q, got %s", name, p.tok.Kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var body []ast.Instruction
	for p.tok.Kind != lexer.RBrace {
		if p.tok.Kind == lexer.EOF {
			return nil, p.errorf(p.span(start), "unterminated macro body for %q: missing '}'", name)
		}
		instr, err := p.parseInstr()
		if err != nil {
			return nil, err
		}
		if instr != nil {
			body = append(body, instr)
		}
	}
	end := p.tok.End
	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}
	return &ast.SuperFunction{Ident: name, Params: params, Body: body, Sp: token.Span{Start: token.Pos(start), End: token.Pos(end)}}, nil
}

// parseIdentOrCall disambiguates a bare identifier (a Literal reference to
// a macro parameter) from a call, based on whether '(' immediately
// follows.
func (p *parser) parseIdentOrCall() (ast.Instruction, error) {
	name, start, end := p.tok.Lit, p.tok.Start, p.tok.End
	calleeSp := token.Span{Start: token.Pos(start), End: token.Pos(end)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.Kind != lexer.LParen {
		return &ast.InlineValue{Value: &ast.Literal{Name: name, Sp: calleeSp}, Sp: calleeSp}, nil
	}

	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.Instruction
	for p.tok.Kind != lexer.RParen {
		arg, err := p.parseInstr()
		if err != nil {
			return nil, err
		}
		if arg != nil {
			args = append(args, arg)
		}
		if p.tok.Kind == lexer.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	callEnd := p.tok.End
	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}
	sp := token.Span{Start: token.Pos(start), End: token.Pos(callEnd)}
	return &ast.InlineValue{Value: &ast.SuperCall{Callee: name, CalleeSp: calleeSp, Args: args, Sp: sp}, Sp: sp}, nil
}
