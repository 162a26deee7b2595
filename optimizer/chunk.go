package optimizer

import (
	"math"

	"github.com/wbf-lang/wbfc/basic"
	"github.com/wbf-lang/wbfc/reconstruct"
)

// chunkParams holds the resolved shape of an exponential-chunk
// construction for a single Add(N): a scratch cell
// inner steps to the right is seeded with outer, then drained through
// inner nested multiply loops, each scaled by floorC, landing the bulk of
// N back at the origin cell; remainder is added directly to fix up
// whatever the integer construction undershoots or overshoots by.
type chunkParams struct {
	sign      int32
	floorC    int64
	inner     int
	outer     int64
	remainder int64
}

// computeChunkParams resolves inner/outer/remainder for a candidate base
// c against n, or reports ok=false if c yields no usable construction
// (floor of c below 2, or |n| below c). When |n| is at least c but below
// c*c, ok is true with inner == 0: no multiply loop at all.
//
// total and remainder are computed from floorC, not the real-valued c:
// floorC is what actually gets emitted as the per-level multiplier, so
// using it consistently here, rather than the real c the k/fract ratio
// is phrased in, is what makes the construction's remainder fix-up
// exact.
func computeChunkParams(n int32, c float64) (chunkParams, bool) {
	sign := int32(1)
	absN := int64(n)
	if n < 0 {
		sign = -1
		absN = -absN
	}
	if absN == 0 {
		return chunkParams{}, false
	}

	floorC := int64(math.Floor(c))
	if floorC < 2 {
		return chunkParams{}, false
	}

	k := math.Log(float64(absN)) / math.Log(c)
	innerF := math.Floor(k)
	inner := int(innerF) - 1
	if inner < 0 {
		return chunkParams{}, false
	}
	fract := k - innerF

	outer := int64(math.Ceil(math.Pow(c, 1+fract)))
	if outer < 1 {
		outer = 1
	}

	total := outer
	for i := 0; i < inner; i++ {
		total *= floorC
	}
	remainder := absN - total

	return chunkParams{sign: sign, floorC: floorC, inner: inner, outer: outer, remainder: remainder}, true
}

// weight estimates the reconstructed length of a chunkParams construction
// without building it, for cheap comparison across candidate bases.
func (p chunkParams) weight() int64 {
	r := p.remainder
	if r < 0 {
		r = -r
	}
	return p.outer + int64(p.inner)*p.floorC + r
}

// build renders p as the basic.Program described in spec.md §4.4.2: seed
// a scratch cell, drain it through p.inner nested multiply loops, walk
// back, then patch the remainder directly onto the origin cell.
func (p chunkParams) build() basic.Program {
	var out basic.Program
	if p.inner > 0 {
		out = append(out, basic.Move(int32(p.inner)))
	}
	out = append(out, basic.Add(int32(p.outer)))
	out = append(out, nestedMultiply(p.sign, p.floorC, p.inner)...)
	if p.inner > 0 {
		out = append(out, basic.Move(int32(-p.inner)))
	}
	if p.remainder != 0 {
		out = append(out, basic.Add(int32(p.sign)*int32(p.remainder)))
	}
	return out
}

// nestedMultiply builds depth nested loops, each of the shape
// [ Move(-1) Add(floorC) <nestedMultiply(depth-1)> Move(1) Add(-1) ],
// which is what drains a seeded counter cell into a cell floorC times
// larger one step to its left. Only the innermost loop, which writes the
// origin cell, adds sign*floorC; the intermediate counters stay positive
// so every loop drains to zero.
func nestedMultiply(sign int32, floorC int64, depth int) basic.Program {
	if depth <= 0 {
		return nil
	}
	mult := int32(floorC)
	if depth == 1 {
		mult *= sign
	}
	var out basic.Program
	out = append(out, basic.LoopStart)
	out = append(out, basic.Move(-1))
	out = append(out, basic.Add(mult))
	out = append(out, nestedMultiply(sign, floorC, depth-1)...)
	out = append(out, basic.Move(1))
	out = append(out, basic.Add(-1))
	out = append(out, basic.LoopEnd)
	return out
}

// optimizeAdd replaces a single Add(n) with a shorter exponential-chunk
// construction when one exists.4.2. At level 2 it tries
// only the fixed base 5; at level 3 and above it searches integer bases
// 2..100, using weight() as a cheap proxy to pick one candidate and then
// verifying the real reconstructed length before accepting it. It always
// returns a program that reconstructs to n's original effect; the only
// question is whether that program is the bare Add(n) or the chunked
// replacement.
func optimizeAdd(n int32, level int) basic.Program {
	if n == 0 {
		return nil
	}

	original := basic.Program{basic.Add(n)}
	bestLen := absInt(n)
	best := original

	accept := func(c float64) {
		params, ok := computeChunkParams(n, c)
		if !ok {
			return
		}
		cand := params.build()
		if l := reconstruct.Len(cand); l < bestLen {
			bestLen = l
			best = cand
		}
	}

	if level == 2 {
		accept(5)
	} else {
		bestWeight := int64(0)
		bestC := 0.0
		haveCandidate := false
		for c := 2; c <= 100; c++ {
			params, ok := computeChunkParams(n, float64(c))
			if !ok {
				continue
			}
			w := params.weight()
			if !haveCandidate || w < bestWeight {
				haveCandidate = true
				bestWeight = w
				bestC = float64(c)
			}
		}
		if haveCandidate {
			accept(bestC)
		}
	}

	return best
}

func absInt(n int32) int {
	if n < 0 {
		return int(-n)
	}
	return int(n)
}
