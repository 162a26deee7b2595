package optimizer

import (
	"golang.org/x/exp/slices"

	"github.com/wbf-lang/wbfc/basic"
)

func equalProgram(a, b basic.Program) bool {
	return slices.Equal([]basic.Instr(a), []basic.Instr(b))
}
