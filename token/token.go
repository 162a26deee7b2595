// Package token defines the source-position representation shared by the
// lexer, parser, ast, and expander packages.
//
// Unlike a line/column encoding, Pos here is a plain byte offset into the
// original source text: spec.md only ever needs a [start, end) byte range
// for diagnostics, never a line number, so there is no point paying for the
// packed line/col representation a full-language front end would want.
package token

import "fmt"

// Pos is a byte offset into the source text; 0 is the first byte.
type Pos int

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start, End Pos
}

// String renders the span as "[start,end)", the form spec.md's error
// messages embed.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Spanner is implemented by every AST node.
type Spanner interface {
	Span() Span
}
