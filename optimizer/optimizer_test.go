package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbf-lang/wbfc/basic"
	"github.com/wbf-lang/wbfc/reconstruct"
)

func TestPassAFoldsAndDrops(t *testing.T) {
	p := basic.Program{basic.Add(1), basic.Add(2), basic.Add(-3), basic.Move(1), basic.Move(1), basic.PutC}
	got := passA(p)
	want := basic.Program{basic.Move(2), basic.PutC}
	require.True(t, equalProgram(got, want), "passA() = %v, want %v", got, want)
}

func TestPassAIdempotent(t *testing.T) {
	p := basic.Program{basic.Add(1), basic.Add(-1), basic.Move(3), basic.Add(5), basic.LoopStart, basic.Add(2), basic.Add(2), basic.LoopEnd}
	once := passA(p)
	twice := passA(once)
	assert.True(t, equalProgram(once, twice), "passA(passA(p)) = %v, want %v (idempotent)", twice, once)
}

func TestOptimizeIdentityAtLevel0(t *testing.T) {
	p := basic.Program{basic.Add(1), basic.Add(1)}
	got := Optimize(p, 0, false)
	assert.True(t, equalProgram(got, p), "Optimize(level 0) = %v, want unchanged %v", got, p)
}

// TestLengthMonotonicity checks that for any optimization level L, the
// reconstructed length is never longer than at level 0.
func TestLengthMonotonicity(t *testing.T) {
	progs := []basic.Program{
		{basic.Add(200)},
		{basic.Add(-255)},
		{basic.Add(1), basic.Add(1), basic.Move(3), basic.Add(1000)},
		{basic.LoopStart, basic.Add(50), basic.LoopEnd, basic.Add(123456)},
	}
	for _, p := range progs {
		base := reconstruct.Len(p)
		for level := 0; level <= 5; level++ {
			out := Optimize(p, level, false)
			assert.LessOrEqualf(t, reconstruct.Len(out), base, "level %d: reconstructed length exceeds level 0 length for %v", level, p)
		}
	}
}

func TestOptimizeAddShortensLargeRun(t *testing.T) {
	p := basic.Program{basic.Add(1000)}
	out := Optimize(p, 3, false)
	require.Less(t, reconstruct.Len(out), reconstruct.Len(p), "Optimize(1000, level 3) did not shrink")
	assert.True(t, out.BracketsBalanced(), "Optimize(1000, level 3) produced unbalanced brackets: %v", out)
}

func TestOptimizeAddSmallRunUnchanged(t *testing.T) {
	p := basic.Program{basic.Add(3)}
	out := Optimize(p, 3, false)
	assert.True(t, equalProgram(out, p), "Optimize(3, level 3) = %v, want unchanged %v (no construction beats 3 chars)", out, p)
}

func TestChunkConstructionEvaluatesToTarget(t *testing.T) {
	for _, n := range []int32{17, -17, 255, -255, 1000, 100000} {
		params, ok := computeChunkParams(n, 7)
		if !ok {
			continue
		}
		prog := params.build()
		assert.Equal(t, n, evalAddDelta(prog), "n=%d: chunk construction nets to wrong delta", n)
	}
}

// evalAddDelta interprets prog as a tiny Brainfuck machine with an
// unbounded tape of unbounded cells (indexed relative to the starting
// position) and returns the net
// value left in the starting cell once the program halts. It exists only
// to check optimizer constructions against their target Add(N); it is not
// a general Brainfuck interpreter.
func evalAddDelta(prog basic.Program) int32 {
	tape := make(map[int]int32)
	pos := 0
	var run func(instrs []basic.Instr) []basic.Instr
	run = func(instrs []basic.Instr) []basic.Instr {
		for len(instrs) > 0 {
			instr := instrs[0]
			instrs = instrs[1:]
			switch instr.Kind {
			case basic.KindAdd:
				tape[pos] += instr.N
			case basic.KindMove:
				pos += int(instr.N)
			case basic.KindLoopStart:
				depth := 1
				end := 0
				for i, in := range instrs {
					if in.Kind == basic.KindLoopStart {
						depth++
					} else if in.Kind == basic.KindLoopEnd {
						depth--
						if depth == 0 {
							end = i
							break
						}
					}
				}
				body := instrs[:end]
				rest := instrs[end+1:]
				for tape[pos] != 0 {
					run(body)
				}
				instrs = rest
			case basic.KindLoopEnd:
				return instrs
			}
		}
		return instrs
	}
	run([]basic.Instr(prog))
	return tape[0]
}
