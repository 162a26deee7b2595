// Package ast defines the abstract syntax tree produced by the lexer/parser
// collaborator and consumed by the expander. It is deliberately a closed
// set of tagged-union node types, one per surface-syntax production.
package ast

import (
	"fmt"
	"strings"

	"github.com/wbf-lang/wbfc/token"
)

// Node is implemented by every AST node: super-values and instructions
// alike.
type Node interface {
	token.Spanner

	// Every Node implements fmt.Stringer so a failing test or a debug dump
	// can print a short description of itself without a type switch.
	fmt.Stringer
}

// SuperValue is a literal operand to a call: an integer, a string, a bare
// identifier, or a call used as a value.
type SuperValue interface {
	Node
	superValue()
}

// Instruction is a single AST-level instruction.
type Instruction interface {
	Node
	instruction()
}

// Program is the top-level sequence of instructions produced by parsing one
// source file.
type Program struct {
	Instrs []Instruction
}

// --- Super-values ---

// Integer is an unsigned decimal literal, e.g. 65.
type Integer struct {
	Value uint32
	Sp    token.Span
}

func (n *Integer) Span() token.Span { return n.Sp }
func (n *Integer) String() string   { return fmt.Sprintf("%d", n.Value) }
func (*Integer) superValue()        {}

// String is a double-quoted, escape-processed string literal.
type String struct {
	Value string
	Sp    token.Span
}

func (n *String) Span() token.Span { return n.Sp }
func (n *String) String() string   { return fmt.Sprintf("%q", n.Value) }
func (*String) superValue()        {}

// Literal is a bare identifier appearing where a value is expected; it is
// resolved against the enclosing scopes at expansion time.
type Literal struct {
	Name string
	Sp   token.Span
}

func (n *Literal) Span() token.Span { return n.Sp }
func (n *Literal) String() string   { return n.Name }
func (*Literal) superValue()        {}

// SuperCall is a call used as a value: callee(args...).
type SuperCall struct {
	Callee   string
	CalleeSp token.Span
	Args     []Instruction
	Sp       token.Span
}

func (n *SuperCall) Span() token.Span { return n.Sp }
func (n *SuperCall) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(parts, ", "))
}
func (*SuperCall) superValue() {}

// --- Instructions ---

// Add is the sum of a contiguous run of '+'/'-' tokens; positive means
// net '+'.
type Add struct {
	N  int32
	Sp token.Span
}

func (n *Add) Span() token.Span { return n.Sp }
func (n *Add) String() string   { return fmt.Sprintf("Add(%d)", n.N) }
func (*Add) instruction()       {}

// Move is the sum of a contiguous run of '>'/'<' tokens; positive means net
// '>'.
type Move struct {
	N  int32
	Sp token.Span
}

func (n *Move) Span() token.Span { return n.Sp }
func (n *Move) String() string   { return fmt.Sprintf("Move(%d)", n.N) }
func (*Move) instruction()       {}

// PutC is the '.' instruction.
type PutC struct{ Sp token.Span }

func (n *PutC) Span() token.Span { return n.Sp }
func (n *PutC) String() string   { return "PutC" }
func (*PutC) instruction()       {}

// GetC is the ',' instruction.
type GetC struct{ Sp token.Span }

func (n *GetC) Span() token.Span { return n.Sp }
func (n *GetC) String() string   { return "GetC" }
func (*GetC) instruction()       {}

// Loop is a '[' body ']' loop.
type Loop struct {
	Body []Instruction
	Sp   token.Span
}

func (n *Loop) Span() token.Span { return n.Sp }
func (n *Loop) String() string   { return fmt.Sprintf("Loop(%d instrs)", len(n.Body)) }
func (*Loop) instruction()       {}

// InlineValue is a SuperValue appearing in instruction position: a bare
// integer, string, identifier, or call.
type InlineValue struct {
	Value SuperValue
	Sp    token.Span
}

func (n *InlineValue) Span() token.Span { return n.Sp }
func (n *InlineValue) String() string   { return n.Value.String() }
func (*InlineValue) instruction()       {}

// SuperFunction is a macro definition: "super name(params) { body }". It is
// a statement in instruction position that emits nothing itself; it only
// registers a callable definition in the enclosing scope.
type SuperFunction struct {
	Ident  string
	Params []string
	Body   []Instruction
	Sp     token.Span
}

func (n *SuperFunction) Span() token.Span { return n.Sp }
func (n *SuperFunction) String() string {
	return fmt.Sprintf("super %s(%s)", n.Ident, strings.Join(n.Params, ", "))
}
func (*SuperFunction) instruction() {}

// Name is the name under which this macro definition is registered in a
// scope.Stack (see package scope and package expander).
func (n *SuperFunction) Name() string { return n.Ident }
