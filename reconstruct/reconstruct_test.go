package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbf-lang/wbfc/basic"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		prog basic.Program
		want string
	}{
		{"empty", basic.Program{}, ""},
		{"add pos", basic.Program{basic.Add(3)}, "+++"},
		{"add neg", basic.Program{basic.Add(-2)}, "--"},
		{"move", basic.Program{basic.Move(2), basic.Move(-1)}, ">><"},
		{"io", basic.Program{basic.PutC, basic.GetC}, ".,"},
		{"loop", basic.Program{basic.LoopStart, basic.Add(1), basic.LoopEnd}, "[+]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.prog))
		})
	}
}

func TestLenMatchesString(t *testing.T) {
	prog := basic.Program{basic.Add(5), basic.Move(-3), basic.PutC, basic.LoopStart, basic.GetC, basic.LoopEnd}
	assert.Equal(t, len(String(prog)), Len(prog))
}
