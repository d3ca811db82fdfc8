// Package errors holds the diagnostics the parser records. None of them stop
// a parse; they are collected and handed back to the caller.
package errors

import (
	"fmt"

	"github.com/pontaoski/monkey/types"
)

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("expected next token to be %s, got %s instead", e.Expected, e.Got)
}

type NoPrefixParse struct {
	Kind     types.TokenKind
	Location types.Span
}

func (e NoPrefixParse) Error() string {
	return fmt.Sprintf("no prefix parse function for %s found", e.Kind)
}

// InvalidLiteral is a numeric literal that does not fit its type.
type InvalidLiteral struct {
	Literal  string
	Kind     types.TokenKind
	Location types.Span
}

func (e InvalidLiteral) Error() string {
	return fmt.Sprintf("could not parse %q as %s", e.Literal, e.Kind)
}

type UnterminatedBlock struct {
	Location types.Span
}

func (e UnterminatedBlock) Error() string {
	return "block opened at " + e.Location.From.String() + " is never closed"
}

// Located is implemented by every diagnostic in this package.
type Located interface {
	error
	Span() types.Span
}

func (e ExpectedKindGotKind) Span() types.Span { return e.Location }
func (e NoPrefixParse) Span() types.Span       { return e.Location }
func (e InvalidLiteral) Span() types.Span      { return e.Location }
func (e UnterminatedBlock) Span() types.Span   { return e.Location }
