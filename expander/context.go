// Package expander implements the tree-walking macro expander: it resolves
// identifiers through nested lexical scopes, substitutes macro arguments,
// enforces non-recursion, and flattens an ast.Program to a flat
// basic.Program.
package expander

import (
	"github.com/wbf-lang/wbfc/ast"
	"github.com/wbf-lang/wbfc/basic"
	"github.com/wbf-lang/wbfc/scope"
)

// varBinding binds a macro parameter name to the caller-supplied argument
// AST node, not its evaluation: arguments are instruction fragments,
// substituted by reference to the unevaluated node.
type varBinding struct {
	name string
	arg  ast.Instruction
}

func (b varBinding) Name() string { return b.name }

// callMarker is an entry on the call-site stack used to detect recursion.
type callMarker struct{ name string }

func (c callMarker) Name() string { return c.name }

// Context is the expansion context: it owns the three parallel scoped
// stacks -- macro definitions, variable bindings, and the call-site marker
// -- plus the growing output buffer of basic instructions.
type Context struct {
	funcs *scope.Stack[*ast.SuperFunction]
	vars  *scope.Stack[varBinding]
	calls *scope.Stack[callMarker]
	out   basic.Program
}

// NewContext creates an expansion context with no open scope.
func NewContext() *Context {
	return &Context{
		funcs: scope.New[*ast.SuperFunction](),
		vars:  scope.New[varBinding](),
		calls: scope.New[callMarker](),
	}
}

// newScope opens a new scope frame on all three stacks at once, so they
// move in lockstep. This is the default used for the root scope and for
// the built-in R() call; a user macro call breaks from this lockstep
// behaviour deliberately (see expandUserCall).
func (c *Context) newScope() {
	c.funcs.NewScope()
	c.vars.NewScope()
	c.calls.NewScope()
}

// endScope closes the most recently opened lockstep scope frame (see
// newScope).
func (c *Context) endScope() {
	c.calls.EndScope()
	c.vars.EndScope()
	c.funcs.EndScope()
}

func (c *Context) emit(i basic.Instr) { c.out = append(c.out, i) }
