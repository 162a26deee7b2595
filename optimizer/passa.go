// Package optimizer implements the length-minimising peephole/fold
// pipeline: Pass A coalesces contiguous Add/Move runs, and
// Pass B rewrites long Add runs as nested multiply-loops when that is
// shorter once reconstructed. Neither pass ever errors; the optimizer only
// ever rewrites a basic.Program into a shorter-or-equal one.
package optimizer

import "github.com/wbf-lang/wbfc/basic"

// passA scans left to right and folds each run of adjacent Add (or Move)
// instructions into a single instruction summing their counts, dropping
// the run entirely if it sums to zero. Every other instruction passes
// through untouched. Because a run always consumes every adjacent
// same-kind instruction in one step, applying passA twice in a row is a
// no-op the second time.
func passA(p basic.Program) basic.Program {
	out := make(basic.Program, 0, len(p))
	i := 0
	for i < len(p) {
		instr := p[i]
		if instr.Kind == basic.KindAdd || instr.Kind == basic.KindMove {
			sum := instr.N
			j := i + 1
			for j < len(p) && p[j].Kind == instr.Kind {
				sum += p[j].N
				j++
			}
			// a dropped zero run can leave two same-kind runs adjacent in out;
			// merge into the previous one so the result is fully folded.
			if k := len(out); k > 0 && out[k-1].Kind == instr.Kind {
				sum += out[k-1].N
				out = out[:k-1]
			}
			if sum != 0 {
				out = append(out, basic.Instr{Kind: instr.Kind, N: sum})
			}
			i = j
			continue
		}
		out = append(out, instr)
		i++
	}
	return out
}
