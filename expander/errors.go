package expander

import (
	"fmt"

	"github.com/wbf-lang/wbfc/token"
)

// Kind classifies an expansion-time error.
type Kind uint8

const (
	// UndeclaredFunction is a call to a name with no registered macro
	// definition.
	UndeclaredFunction Kind = iota
	// UndeclaredSymbol is a reference to an identifier with no binding in
	// any open scope.
	UndeclaredSymbol
	// Invalid is the catch-all for semantic violations: recursion, a
	// non-integer R() count, and similar constraint breaches.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case UndeclaredFunction:
		return "undeclared function"
	case UndeclaredSymbol:
		return "undeclared symbol"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("<invalid Kind %d>", uint8(k))
	}
}

// Error is an expansion-time error, carrying the kind, a human-readable
// message and the source span of the offending instruction. Error() prints
// a single human-readable line including the byte range.
type Error struct {
	Kind Kind
	Msg  string
	Sp   token.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Sp, e.Msg)
}
