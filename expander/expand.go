package expander

import (
	"fmt"

	"github.com/wbf-lang/wbfc/ast"
	"github.com/wbf-lang/wbfc/basic"
	"github.com/wbf-lang/wbfc/token"
)

// builtinRepeatName is the callee name of the built-in repetition
// primitive, R(count, fragment).
const builtinRepeatName = "R"

// countBindingName is the synthetic parameter name bound to R()'s first
// argument while evaluating its count.
const countBindingName = "__count"

// Expand walks prog and returns the flat basic.Program it expands to, or
// the first compile error encountered. Expansion aborts on the first
// error without producing partial output.
func Expand(prog *ast.Program) (basic.Program, error) {
	ctx := NewContext()
	ctx.newScope()
	if err := ctx.expandAll(prog.Instrs); err != nil {
		return nil, err
	}
	ctx.endScope()
	return ctx.out, nil
}

func (c *Context) expandAll(instrs []ast.Instruction) error {
	for _, instr := range instrs {
		if err := c.expand(instr); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) expand(instr ast.Instruction) error {
	switch n := instr.(type) {
	case *ast.Add:
		c.emit(basic.Add(n.N))
		return nil

	case *ast.Move:
		c.emit(basic.Move(n.N))
		return nil

	case *ast.PutC:
		c.emit(basic.PutC)
		return nil

	case *ast.GetC:
		c.emit(basic.GetC)
		return nil

	case *ast.Loop:
		c.emit(basic.LoopStart)
		if err := c.expandAll(n.Body); err != nil {
			return err
		}
		c.emit(basic.LoopEnd)
		return nil

	case *ast.SuperFunction:
		// Definitions emit nothing; they take effect for all siblings that
		// follow and all nested scopes until the enclosing scope ends.
		c.funcs.Push(n)
		return nil

	case *ast.InlineValue:
		return c.expandValue(n.Value)

	default:
		panic(fmt.Sprintf("expander: unexpected instruction %T", instr))
	}
}

func (c *Context) expandValue(v ast.SuperValue) error {
	switch v := v.(type) {
	case *ast.Integer:
		// The u32 source value is emitted through its low-order signed i32
		// representation; values >= 2^31 wrap to negative. This is
		// preserved deliberately, not a bug.
		c.emit(basic.Add(int32(v.Value)))
		return nil

	case *ast.String:
		for i, r := range v.Value {
			if i > 0 {
				c.emit(basic.Move(1))
			}
			c.emit(basic.Add(int32(r) & 0xFF))
		}
		return nil

	case *ast.Literal:
		resolved, err := c.resolveVariable(v.Name, v.Sp)
		if err != nil {
			return err
		}
		return c.expand(resolved)

	case *ast.SuperCall:
		return c.expandCall(v)

	default:
		panic(fmt.Sprintf("expander: unexpected super-value %T", v))
	}
}

// resolveVariable walks the variable-binding chain starting at name: if the
// bound value is itself an InlineValue(Literal(other)) -- i.e. the caller
// forwarded another bare identifier -- it keeps following until it reaches
// a non-literal binding, an unbound name, or a name it has already visited
// in this chain. A cycle is resolved to the last well-defined binding found,
// rather than left to loop forever.
func (c *Context) resolveVariable(name string, sp token.Span) (ast.Instruction, error) {
	seen := make(map[string]bool)
	cur := name
	var last ast.Instruction
	for {
		if seen[cur] {
			return last, nil
		}
		seen[cur] = true

		b, ok := c.vars.Find(cur)
		if !ok {
			return nil, &Error{Kind: UndeclaredSymbol, Msg: fmt.Sprintf("undeclared symbol %q", cur), Sp: sp}
		}
		last = b.arg

		if iv, ok := b.arg.(*ast.InlineValue); ok {
			if lit, ok := iv.Value.(*ast.Literal); ok {
				cur = lit.Name
				continue
			}
		}
		return b.arg, nil
	}
}

func (c *Context) expandCall(call *ast.SuperCall) error {
	if call.Callee == builtinRepeatName && len(call.Args) == 2 {
		return c.expandRepeat(call)
	}
	return c.expandUserCall(call)
}

// expandRepeat implements the built-in R(count, fragment) primitive.
func (c *Context) expandRepeat(call *ast.SuperCall) error {
	countArg, fragment := call.Args[0], call.Args[1]

	c.newScope()
	c.vars.Push(varBinding{name: countBindingName, arg: countArg})

	k, err := c.resolveCount(countArg.Span())
	for i := uint32(0); err == nil && i < k; i++ {
		err = c.expand(fragment)
	}

	c.endScope()
	return err
}

func (c *Context) resolveCount(argSpan token.Span) (uint32, error) {
	resolved, err := c.resolveVariable(countBindingName, argSpan)
	if err != nil {
		return 0, err
	}
	if iv, ok := resolved.(*ast.InlineValue); ok {
		if intLit, ok := iv.Value.(*ast.Integer); ok {
			return intLit.Value, nil
		}
	}
	return 0, &Error{Kind: Invalid, Msg: "R: count argument must resolve to an integer literal", Sp: argSpan}
}

// expandUserCall implements the user-macro call path. The five steps below
// run in a fixed order: the two-scope split (parameter bindings in an
// outer scope, the recursion marker and nested definitions in an inner
// scope) is deliberate, so that a future change could give bindings a
// narrower visibility than the recursion guard without disturbing it.
func (c *Context) expandUserCall(call *ast.SuperCall) error {
	if _, onStack := c.calls.Find(call.Callee); onStack {
		return &Error{Kind: Invalid, Msg: fmt.Sprintf("%q cannot be recursive", call.Callee), Sp: call.CalleeSp}
	}

	fn, ok := c.funcs.Find(call.Callee)
	if !ok {
		return &Error{Kind: UndeclaredFunction, Msg: fmt.Sprintf("undeclared function %q", call.Callee), Sp: call.CalleeSp}
	}

	// 1. outer scope for parameter bindings.
	c.vars.NewScope()
	// 2. bind params to args; arity mismatches are tolerated silently --
	// extra parameters stay unbound, extra arguments are dropped.
	n := len(fn.Params)
	if len(call.Args) < n {
		n = len(call.Args)
	}
	for i := 0; i < n; i++ {
		c.vars.Push(varBinding{name: fn.Params[i], arg: call.Args[i]})
	}

	// 3. inner scope for nested definitions and the recursion marker.
	c.funcs.NewScope()
	c.calls.NewScope()
	c.calls.Push(callMarker{name: call.Callee})

	// 4. expand the macro body in order.
	err := c.expandAll(fn.Body)

	// 5. close inner scope, then outer scope.
	c.calls.EndScope()
	c.funcs.EndScope()
	c.vars.EndScope()

	return err
}
