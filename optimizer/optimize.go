package optimizer

import (
	"golang.org/x/exp/slices"

	"github.com/wbf-lang/wbfc/basic"
	"github.com/wbf-lang/wbfc/reconstruct"
)

// ioFoldThreshold is the shortest run of identical I/O instructions worth
// even trying to fold: below it, the scratch-cell setup cost can never be
// recovered.
const ioFoldThreshold = 8

// Optimize runs the length-minimising pipeline at the given level:
//
//	0 - identity
//	1 - Pass A (contiguous fold)
//	2 - Pass A, then Pass B with a fixed base of 5
//	3 - Pass A, then Pass B searching bases 2..100
//	4 - as 3, then Pass B and Pass A a second time
//
// unsafeIO opts into folding long runs of '.' or ',' through a counter
// loop; it is off by default because it assumes the scratch cell used is
// otherwise dead, which the expander's output alone cannot guarantee.
func Optimize(p basic.Program, level int, unsafeIO bool) basic.Program {
	if level <= 0 {
		return slices.Clone(p)
	}

	out := passA(p)
	if level < 2 {
		return out
	}

	out = passB(out, level, unsafeIO)
	if level >= 4 {
		out = passB(out, level, unsafeIO)
		out = passA(out)
	}
	return out
}

// passB rewrites every Add instruction via optimizeAdd, leaving every
// other instruction untouched, then optionally folds long I/O runs.
func passB(p basic.Program, level int, unsafeIO bool) basic.Program {
	out := make(basic.Program, 0, len(p))
	for _, instr := range p {
		if instr.Kind == basic.KindAdd {
			out = append(out, optimizeAdd(instr.N, level)...)
			continue
		}
		out = append(out, instr)
	}
	if unsafeIO {
		out = foldIO(out, level)
	}
	return out
}

// foldIO replaces runs of ioFoldThreshold or more identical PutC/GetC
// instructions with a counter-driven loop, when doing so is strictly
// shorter once reconstructed. This is opt-in: the replacement
// instructions use the cell immediately to the right of the
// current one as scratch, and assume it starts and ends at zero, which is
// only safe if nothing downstream of this run depends on that cell's
// prior contents.
func foldIO(p basic.Program, level int) basic.Program {
	out := make(basic.Program, 0, len(p))
	i := 0
	for i < len(p) {
		instr := p[i]
		if instr.Kind == basic.KindPutC || instr.Kind == basic.KindGetC {
			j := i + 1
			for j < len(p) && p[j].Kind == instr.Kind {
				j++
			}
			run := j - i
			if run >= ioFoldThreshold {
				if folded := buildIOFold(instr.Kind, run, level); folded != nil && reconstruct.Len(folded) < run {
					out = append(out, folded...)
					i = j
					continue
				}
			}
			for k := i; k < j; k++ {
				out = append(out, instr)
			}
			i = j
			continue
		}
		out = append(out, instr)
		i++
	}
	return out
}

// buildIOFold builds: move to scratch, seed it with n via the same
// exponential-chunk construction used for Add, then loop
// [ Add(-1) Move(-1) <kind> Move(1) ] until the scratch cell drains,
// then walk back.
func buildIOFold(kind basic.Kind, n int, level int) basic.Program {
	if n <= 0 {
		return nil
	}
	counter := optimizeAdd(int32(n), level)
	if counter == nil {
		return nil
	}

	var out basic.Program
	out = append(out, basic.Move(1))
	out = append(out, counter...)
	out = append(out, basic.LoopStart)
	out = append(out, basic.Add(-1))
	out = append(out, basic.Move(-1))
	out = append(out, basic.Instr{Kind: kind})
	out = append(out, basic.Move(1))
	out = append(out, basic.LoopEnd)
	out = append(out, basic.Move(-1))
	return out
}
