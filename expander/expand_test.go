package expander

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbf-lang/wbfc/basic"
	"github.com/wbf-lang/wbfc/parser"
	"github.com/wbf-lang/wbfc/reconstruct"
)

func compile(t *testing.T, src string) (basic.Program, error) {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err, "parse error")
	return Expand(prog)
}

func mustCompile(t *testing.T, src string) string {
	t.Helper()
	p, err := compile(t, src)
	require.NoError(t, err, "Expand(%q)", src)
	return reconstruct.String(p)
}

func requireErrorKind(t *testing.T, err error, want Kind) *Error {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*Error)
	require.True(t, ok, "got %#v, want an *Error", err)
	assert.Equal(t, want, e.Kind)
	return e
}

// TestEndToEndScenarios mirrors the numbered scenario table of worked
// examples, 1 through 5 (the error-producing scenarios 6 and 7 are
// covered separately below).
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"literal run", "+++", "+++"},
		{"macro call duplicates arg", "super f(a){ a a } f(+)", "++"},
		{"builtin repeat", "R(3, +)", "+++"},
		{"string literal", `"AB"`, strings.Repeat("+", 65) + ">" + strings.Repeat("+", 66)},
		{"forwarding through nested macros", "super id(x){ x } super w(y){ id(y) } w(++)", "++"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustCompile(t, tt.src))
		})
	}
}

func TestRecursionRejected(t *testing.T) {
	_, err := compile(t, "super r(){ r() } r()")
	requireErrorKind(t, err, Invalid)
}

func TestUndeclaredSymbol(t *testing.T) {
	_, err := compile(t, "x")
	requireErrorKind(t, err, UndeclaredSymbol)
}

func TestUndeclaredFunction(t *testing.T) {
	_, err := compile(t, "f()")
	requireErrorKind(t, err, UndeclaredFunction)
}

// TestShadowing verifies that a macro parameter shadows an outer binding
// with the same name for the duration of the call, and that the outer
// binding is restored afterward.
func TestShadowing(t *testing.T) {
	src := `
super outer(x) {
	super inner(x) { x x }
	inner(+)
	x
}
outer(-)
`
	assert.Equal(t, "++-", mustCompile(t, src))
}

func TestRecursionThroughIndirection(t *testing.T) {
	_, err := compile(t, "super a(){ b() } super b(){ a() } a()")
	requireErrorKind(t, err, Invalid)
}

func TestArityMismatchIsTolerated(t *testing.T) {
	// f takes one parameter and is given three arguments; the two extra
	// arguments are dropped, so this must not error.
	_, err := compile(t, "super f(a){ a } f(+, -, .)")
	assert.NoError(t, err)
}

func TestRCountMustBeInteger(t *testing.T) {
	_, err := compile(t, "super f(n){ R(n, +) } f(+)")
	requireErrorKind(t, err, Invalid)
}

func TestNestedRepeat(t *testing.T) {
	assert.Equal(t, "++++++", mustCompile(t, "R(2, R(3, +))"))
}
