// Package wbfc wires the compiler's stages together: parse, expand,
// optimize, reconstruct. It is the one place that owns the pipeline
// order, so the CLI and the end-to-end tests call the same path.
package wbfc

import (
	"github.com/wbf-lang/wbfc/expander"
	"github.com/wbf-lang/wbfc/optimizer"
	"github.com/wbf-lang/wbfc/parser"
	"github.com/wbf-lang/wbfc/reconstruct"
)

// Compile translates WBF source src into plain Brainfuck text, optimized
// at the given level (0..5) with unsafeIO controlling whether long I/O
// runs are folded through a counter loop. The returned
// error is either a *parser.Error or an *expander.Error.
func Compile(src []byte, level int, unsafeIO bool) (string, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return "", err
	}

	basicProg, err := expander.Expand(prog)
	if err != nil {
		return "", err
	}

	basicProg = optimizer.Optimize(basicProg, level, unsafeIO)
	return reconstruct.String(basicProg), nil
}
