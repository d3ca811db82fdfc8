// Package parser builds an ast.Program from a token stream using recursive
// descent for statements and Pratt parsing for expressions.
//
// The parser never gives up on a program. Every structural problem is
// recorded as a diagnostic and parsing resumes; callers must check Errors
// before trusting the tree.
package parser

import (
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/errors"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/types"
)

type precedence int

const (
	LOWEST precedence = iota
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[types.TokenKind]precedence{
	types.EQ:       EQUALS,
	types.NOTEQ:    EQUALS,
	types.LT:       LESSGREATER,
	types.GT:       LESSGREATER,
	types.LE:       LESSGREATER,
	types.GE:       LESSGREATER,
	types.PLUS:     SUM,
	types.MINUS:    SUM,
	types.ASTERISK: PRODUCT,
	types.SLASH:    PRODUCT,
	types.LPAREN:   CALL,
}

func precedenceOf(k types.TokenKind) precedence {
	if p, ok := precedences[k]; ok {
		return p
	}
	return LOWEST
}

type Parser struct {
	l    *lexer.Lexer
	cur  types.Token
	peek types.Token

	errors []error
}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(k types.TokenKind) bool {
	return p.cur.Kind == k
}

func (p *Parser) peekIs(k types.TokenKind) bool {
	return p.peek.Kind == k
}

// expectPeek advances if the next token is k. Otherwise it records a
// diagnostic and leaves the parser where it was.
func (p *Parser) expectPeek(k types.TokenKind) bool {
	if p.peekIs(k) {
		p.next()
		return true
	}

	p.errors = append(p.errors, errors.ExpectedKindGotKind{
		Expected: k,
		Got:      p.peek.Kind,
		Location: p.peek.Location,
	})
	return false
}

func (p *Parser) curPrecedence() precedence {
	return precedenceOf(p.cur.Kind)
}

func (p *Parser) peekPrecedence() precedence {
	return precedenceOf(p.peek.Kind)
}

// Errors returns the diagnostic messages recorded so far, in order.
func (p *Parser) Errors() []string {
	msgs := make([]string, 0, len(p.errors))
	for _, err := range p.errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// Diagnostics returns the recorded diagnostics. Each implements
// errors.Located.
func (p *Parser) Diagnostics() []error {
	return append([]error(nil), p.errors...)
}

// Err folds every diagnostic into one error, or returns nil if there were
// none.
func (p *Parser) Err() error {
	var result *multierror.Error
	for _, err := range p.errors {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curIs(types.EOF) {
		stmt := p.parseStatement()
		if _, ok := stmt.(ast.None); !ok {
			program.Statements = append(program.Statements, stmt)
		}
		p.next()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case types.LET:
		return p.parseLetStatement()
	case types.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// skipStatement advances to the statement's terminating semicolon. It stops
// early at EOF, or in front of a closing brace so an enclosing block still
// sees it.
func (p *Parser) skipStatement() {
	for !p.curIs(types.SEMICOLON) && !p.curIs(types.EOF) && !p.peekIs(types.RBRACE) {
		p.next()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	if !p.expectPeek(types.IDENT) {
		p.skipStatement()
		return ast.None{}
	}
	name := ast.Identifier(p.cur.Literal)

	if !p.expectPeek(types.ASSIGN) {
		p.skipStatement()
		return ast.None{}
	}

	value := p.parseOperand(LOWEST)
	p.endStatement()

	return ast.Let{Name: name, Value: value}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	value := p.parseOperand(LOWEST)
	p.endStatement()

	return ast.Return{Value: value}
}

// endStatement consumes the semicolon after a let or return. A closing brace
// or EOF also ends the statement. Anything else is reported and skipped.
func (p *Parser) endStatement() {
	switch p.peek.Kind {
	case types.SEMICOLON:
		p.next()
	case types.RBRACE, types.EOF:
	default:
		p.errors = append(p.errors, errors.ExpectedKindGotKind{
			Expected: types.SEMICOLON,
			Got:      p.peek.Kind,
			Location: p.peek.Location,
		})
		p.skipStatement()
	}
}

// parseOperand parses the expression after the current token. If the next
// token cannot start one and only ends the statement or block, it is reported
// and left in place.
func (p *Parser) parseOperand(prec precedence) ast.Expression {
	if endsStatement(p.peek.Kind) {
		p.errors = append(p.errors, errors.NoPrefixParse{
			Kind:     p.peek.Kind,
			Location: p.peek.Location,
		})
		return ast.Invalid{}
	}
	p.next()
	return p.parseExpression(prec)
}

func endsStatement(kind types.TokenKind) bool {
	return kind == types.SEMICOLON || kind == types.RBRACE || kind == types.EOF
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)

	if p.peekIs(types.SEMICOLON) {
		p.next()
	}

	return ast.ExpressionStatement{Expression: expr}
}

// parseBlockStatement should be called with the parser on the opening brace.
// It returns with the parser on the closing brace, or on EOF if there was
// none.
func (p *Parser) parseBlockStatement() ast.Statement {
	open := p.cur
	block := ast.Block{}

	p.next()
	for !p.curIs(types.RBRACE) && !p.curIs(types.EOF) {
		stmt := p.parseStatement()
		if _, ok := stmt.(ast.None); !ok {
			block = append(block, stmt)
		}
		p.next()
	}

	if p.curIs(types.EOF) {
		p.errors = append(p.errors, errors.UnterminatedBlock{Location: open.Location})
	}

	return block
}

func (p *Parser) parseExpression(prec precedence) ast.Expression {
	left := p.parsePrefix()

	for !p.peekIs(types.SEMICOLON) && prec < p.peekPrecedence() {
		p.next()

		if p.curIs(types.LPAREN) {
			left = p.parseCallExpression(left)
		} else {
			left = p.parseInfixExpression(left)
		}
	}

	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Kind {
	case types.IDENT:
		return ast.Ident(p.cur.Literal)
	case types.INT:
		v, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return p.invalidLiteral()
		}
		return ast.Integer(v)
	case types.FLOAT:
		v, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return p.invalidLiteral()
		}
		return ast.Float(v)
	case types.TRUE, types.FALSE:
		return ast.Boolean(p.curIs(types.TRUE))
	case types.BANG, types.MINUS, types.PLUS:
		op := p.cur.Kind
		return ast.Prefix{
			Operator: op,
			Right:    p.parseOperand(PREFIX),
		}
	case types.LPAREN:
		if endsStatement(p.peek.Kind) {
			return p.parseOperand(LOWEST)
		}
		expr := p.parseOperand(LOWEST)
		if !p.expectPeek(types.RPAREN) {
			return ast.Invalid{}
		}
		return expr
	case types.IF:
		return p.parseIfExpression()
	case types.FUNCTION:
		return p.parseFunctionLiteral()
	}

	p.errors = append(p.errors, errors.NoPrefixParse{
		Kind:     p.cur.Kind,
		Location: p.cur.Location,
	})
	return ast.Invalid{}
}

func (p *Parser) invalidLiteral() ast.Expression {
	p.errors = append(p.errors, errors.InvalidLiteral{
		Literal:  p.cur.Literal,
		Kind:     p.cur.Kind,
		Location: p.cur.Location,
	})
	return ast.Invalid{}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	prec := p.curPrecedence()
	op := p.cur.Kind

	return ast.Infix{
		Left:     left,
		Operator: op,
		Right:    p.parseOperand(prec),
	}
}

func (p *Parser) parseIfExpression() ast.Expression {
	if !p.expectPeek(types.LPAREN) {
		return ast.Invalid{}
	}
	p.next()
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(types.RPAREN) {
		return ast.Invalid{}
	}
	if !p.expectPeek(types.LBRACE) {
		return ast.Invalid{}
	}
	consequence := p.parseBlockStatement()

	var alternative ast.Statement = ast.None{}
	if p.peekIs(types.ELSE) {
		p.next()
		if !p.expectPeek(types.LBRACE) {
			return ast.Invalid{}
		}
		alternative = p.parseBlockStatement()
	}

	return ast.If{
		Condition:   cond,
		Consequence: consequence,
		Alternative: alternative,
	}
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	if !p.expectPeek(types.LPAREN) {
		return ast.Invalid{}
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return ast.Invalid{}
	}

	if !p.expectPeek(types.LBRACE) {
		return ast.Invalid{}
	}

	return ast.Function{
		Parameters: params,
		Body:       p.parseBlockStatement(),
	}
}

// parseFunctionParameters is called on the opening parenthesis and returns
// on the closing one.
func (p *Parser) parseFunctionParameters() ([]ast.Identifier, bool) {
	params := []ast.Identifier{}

	if p.peekIs(types.RPAREN) {
		p.next()
		return params, true
	}

	if !p.expectPeek(types.IDENT) {
		return nil, false
	}
	params = append(params, ast.Identifier(p.cur.Literal))

	for p.peekIs(types.COMMA) {
		p.next()
		if !p.expectPeek(types.IDENT) {
			return nil, false
		}
		params = append(params, ast.Identifier(p.cur.Literal))
	}

	if !p.expectPeek(types.RPAREN) {
		return nil, false
	}

	return params, true
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	args, ok := p.parseCallArguments()
	if !ok {
		return ast.Invalid{}
	}

	return ast.Call{
		Function:  fn,
		Arguments: args,
	}
}

func (p *Parser) parseCallArguments() ([]ast.Expression, bool) {
	args := []ast.Expression{}

	if p.peekIs(types.RPAREN) {
		p.next()
		return args, true
	}

	p.next()
	args = append(args, p.parseExpression(LOWEST))

	for p.peekIs(types.COMMA) {
		p.next()
		p.next()
		args = append(args, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(types.RPAREN) {
		return nil, false
	}

	return args, true
}
