// Package ast defines the syntax tree produced by the parser.
//
// Statements and expressions are closed sum types: every variant implements
// a marker method, and consumers switch on the concrete type. Every node owns
// its children outright; nothing in a tree is shared.
package ast

import "github.com/pontaoski/monkey/types"

type Node interface {
	String() string
}

type Statement interface {
	Node
	is_Statement()
}

type Expression interface {
	Node
	is_Expression()
}

type Program struct {
	Statements []Statement
}

type Identifier string

type Let struct {
	Name  Identifier
	Value Expression
}

func (v Let) is_Statement() {}

type Return struct {
	Value Expression
}

func (v Return) is_Statement() {}

type ExpressionStatement struct {
	Expression Expression
}

func (v ExpressionStatement) is_Statement() {}

type Block []Statement

func (v Block) is_Statement() {}

// None stands in for a statement that is not there, such as the missing else
// arm of an if. It is distinct from an empty Block.
type None struct{}

func (v None) is_Statement() {}

type Ident Identifier

func (v Ident) is_Expression() {}

type Integer int64

func (v Integer) is_Expression() {}

type Float float64

func (v Float) is_Expression() {}

type Boolean bool

func (v Boolean) is_Expression() {}

type Prefix struct {
	Operator types.TokenKind
	Right    Expression
}

func (v Prefix) is_Expression() {}

type Infix struct {
	Left     Expression
	Operator types.TokenKind
	Right    Expression
}

func (v Infix) is_Expression() {}

type If struct {
	Condition   Expression
	Consequence Statement
	Alternative Statement
}

func (v If) is_Expression() {}

type Function struct {
	Parameters []Identifier
	Body       Statement
}

func (v Function) is_Expression() {}

type Call struct {
	Function  Expression
	Arguments []Expression
}

func (v Call) is_Expression() {}

// Invalid is the placeholder the parser leaves where an expression could not
// be parsed. A diagnostic is always recorded alongside it.
type Invalid struct{}

func (v Invalid) is_Expression() {}
