// Package reconstruct serializes a basic.Program back to plain Brainfuck
// text. It is a pure, total function: every basic
// instruction maps to a fixed textual form, so reconstruction never fails.
package reconstruct

import (
	"strings"

	"github.com/wbf-lang/wbfc/basic"
)

// String renders p as Brainfuck source text: Add(n>=0) becomes n copies of
// '+', Add(n<0) becomes |n| copies of '-' (and analogously for Move with
// '>'/'<'), and the remaining instructions each render as a single
// character. There is no separator between instructions.
func String(p basic.Program) string {
	var b strings.Builder
	for _, instr := range p {
		writeInstr(&b, instr)
	}
	return b.String()
}

// Len reports the length of String(p) without allocating the string,
// useful for the optimizer's accept/reject comparisons on large programs.
func Len(p basic.Program) int {
	n := 0
	for _, instr := range p {
		switch instr.Kind {
		case basic.KindAdd, basic.KindMove:
			if instr.N < 0 {
				n += int(-instr.N)
			} else {
				n += int(instr.N)
			}
		default:
			n++
		}
	}
	return n
}

func writeInstr(b *strings.Builder, instr basic.Instr) {
	switch instr.Kind {
	case basic.KindAdd:
		writeRun(b, instr.N, '+', '-')
	case basic.KindMove:
		writeRun(b, instr.N, '>', '<')
	case basic.KindPutC:
		b.WriteByte('.')
	case basic.KindGetC:
		b.WriteByte(',')
	case basic.KindLoopStart:
		b.WriteByte('[')
	case basic.KindLoopEnd:
		b.WriteByte(']')
	}
}

func writeRun(b *strings.Builder, n int32, pos, neg byte) {
	c := pos
	if n < 0 {
		c = neg
		n = -n
	}
	for ; n > 0; n-- {
		b.WriteByte(c)
	}
}
