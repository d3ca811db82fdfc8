package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/errors"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/types"
)

// ----------------------------------------------------------------------------
// Test helpers

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := NewParser(lexer.NewLexer(src, "test.mk"))
	program := p.ParseProgram()
	require.NotNil(t, program)
	require.Empty(t, p.Errors(), "parser errors for %q", src)
	return program
}

func parseWithErrors(src string) (*ast.Program, []string) {
	p := NewParser(lexer.NewLexer(src, "test.mk"))
	program := p.ParseProgram()
	return program, p.Errors()
}

func assertTree(t *testing.T, want, got *ast.Program) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func exprStmt(e ast.Expression) ast.Statement {
	return ast.ExpressionStatement{Expression: e}
}

func single(t *testing.T, src string) ast.Expression {
	t.Helper()
	program := parse(t, src)
	require.Len(t, program.Statements, 1)
	stmt, ok := program.Statements[0].(ast.ExpressionStatement)
	require.True(t, ok, "statement is %T, want ast.ExpressionStatement", program.Statements[0])
	return stmt.Expression
}

// ----------------------------------------------------------------------------
// Statements

func TestLetStatements(t *testing.T) {
	program := parse(t, `
let x = 5;
let y = true;
let foobar = y;
`)

	assertTree(t, &ast.Program{Statements: []ast.Statement{
		ast.Let{Name: "x", Value: ast.Integer(5)},
		ast.Let{Name: "y", Value: ast.Boolean(true)},
		ast.Let{Name: "foobar", Value: ast.Ident("y")},
	}}, program)
}

func TestLetWithoutSemicolonAtEOF(t *testing.T) {
	program := parse(t, "let x = 1 + 2")
	assertTree(t, &ast.Program{Statements: []ast.Statement{
		ast.Let{Name: "x", Value: ast.Infix{Left: ast.Integer(1), Operator: types.PLUS, Right: ast.Integer(2)}},
	}}, program)
}

func TestReturnStatements(t *testing.T) {
	program := parse(t, `
return 5;
return 10;
return 993322;
return x + 1;
`)

	assertTree(t, &ast.Program{Statements: []ast.Statement{
		ast.Return{Value: ast.Integer(5)},
		ast.Return{Value: ast.Integer(10)},
		ast.Return{Value: ast.Integer(993322)},
		ast.Return{Value: ast.Infix{Left: ast.Ident("x"), Operator: types.PLUS, Right: ast.Integer(1)}},
	}}, program)
}

func TestExpressionStatementsWithoutTerminator(t *testing.T) {
	program := parse(t, "a; b c")
	assertTree(t, &ast.Program{Statements: []ast.Statement{
		exprStmt(ast.Ident("a")),
		exprStmt(ast.Ident("b")),
		exprStmt(ast.Ident("c")),
	}}, program)
}

// ----------------------------------------------------------------------------
// Expressions

func TestLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Expression
	}{
		{"foobar;", ast.Ident("foobar")},
		{"5;", ast.Integer(5)},
		{"9223372036854775807", ast.Integer(9223372036854775807)},
		{"2.75", ast.Float(2.75)},
		{"true", ast.Boolean(true)},
		{"false;", ast.Boolean(false)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, single(t, tt.src))
		})
	}
}

func TestPrefixExpressions(t *testing.T) {
	tests := []struct {
		src  string
		op   types.TokenKind
		want ast.Expression
	}{
		{"!5;", types.BANG, ast.Integer(5)},
		{"-15;", types.MINUS, ast.Integer(15)},
		{"+15;", types.PLUS, ast.Integer(15)},
		{"!true;", types.BANG, ast.Boolean(true)},
		{"-x", types.MINUS, ast.Ident("x")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, ast.Prefix{Operator: tt.op, Right: tt.want}, single(t, tt.src))
		})
	}
}

func TestInfixExpressions(t *testing.T) {
	tests := []struct {
		src         string
		left, right ast.Expression
		op          types.TokenKind
	}{
		{"5 + 5;", ast.Integer(5), ast.Integer(5), types.PLUS},
		{"5 - 5;", ast.Integer(5), ast.Integer(5), types.MINUS},
		{"5 * 5;", ast.Integer(5), ast.Integer(5), types.ASTERISK},
		{"5 / 5;", ast.Integer(5), ast.Integer(5), types.SLASH},
		{"5 > 5;", ast.Integer(5), ast.Integer(5), types.GT},
		{"5 < 5;", ast.Integer(5), ast.Integer(5), types.LT},
		{"5 >= 5;", ast.Integer(5), ast.Integer(5), types.GE},
		{"5 <= 5;", ast.Integer(5), ast.Integer(5), types.LE},
		{"5 == 5;", ast.Integer(5), ast.Integer(5), types.EQ},
		{"5 != 5;", ast.Integer(5), ast.Integer(5), types.NOTEQ},
		{"true == false", ast.Boolean(true), ast.Boolean(false), types.EQ},
		{"a != b", ast.Ident("a"), ast.Ident("b"), types.NOTEQ},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, ast.Infix{Left: tt.left, Operator: tt.op, Right: tt.right}, single(t, tt.src))
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"+a - b", "((+a) - b)"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 <= 4 != 3 >= 4", "((5 <= 4) != (3 >= 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"1.5 * 2", "(1.5 * 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.src).String())
		})
	}
}

func TestIfExpression(t *testing.T) {
	got := single(t, "if (x < y) { x }")
	assert.Equal(t, ast.If{
		Condition:   ast.Infix{Left: ast.Ident("x"), Operator: types.LT, Right: ast.Ident("y")},
		Consequence: ast.Block{exprStmt(ast.Ident("x"))},
		Alternative: ast.None{},
	}, got)
}

func TestIfElseExpression(t *testing.T) {
	got := single(t, "if (x < y) { x } else { let z = y; return z; }")
	assert.Equal(t, ast.If{
		Condition:   ast.Infix{Left: ast.Ident("x"), Operator: types.LT, Right: ast.Ident("y")},
		Consequence: ast.Block{exprStmt(ast.Ident("x"))},
		Alternative: ast.Block{
			ast.Let{Name: "z", Value: ast.Ident("y")},
			ast.Return{Value: ast.Ident("z")},
		},
	}, got)
}

func TestEmptyBlocks(t *testing.T) {
	got := single(t, "if (true) {} else {}")
	assert.Equal(t, ast.If{
		Condition:   ast.Boolean(true),
		Consequence: ast.Block{},
		Alternative: ast.Block{},
	}, got)
}

func TestLetInsideBlockWithoutSemicolon(t *testing.T) {
	got := single(t, "if (c) { let a = 1 }")
	assert.Equal(t, ast.If{
		Condition:   ast.Ident("c"),
		Consequence: ast.Block{ast.Let{Name: "a", Value: ast.Integer(1)}},
		Alternative: ast.None{},
	}, got)
}

func TestFunctionLiteral(t *testing.T) {
	got := single(t, "fn(x, y) { x + y; }")
	assert.Equal(t, ast.Function{
		Parameters: []ast.Identifier{"x", "y"},
		Body: ast.Block{
			exprStmt(ast.Infix{Left: ast.Ident("x"), Operator: types.PLUS, Right: ast.Ident("y")}),
		},
	}, got)
}

func TestFunctionParameters(t *testing.T) {
	tests := []struct {
		src  string
		want []ast.Identifier
	}{
		{"fn() {};", nil},
		{"fn(x) {};", []ast.Identifier{"x"}},
		{"fn(x, y, z) {};", []ast.Identifier{"x", "y", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			fn, ok := single(t, tt.src).(ast.Function)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, fn.Parameters, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCallExpression(t *testing.T) {
	program := parse(t, "add(1, 2 * 3, 4 + 5); noop()")
	assertTree(t, &ast.Program{Statements: []ast.Statement{
		exprStmt(ast.Call{
			Function: ast.Ident("add"),
			Arguments: []ast.Expression{
				ast.Integer(1),
				ast.Infix{Left: ast.Integer(2), Operator: types.ASTERISK, Right: ast.Integer(3)},
				ast.Infix{Left: ast.Integer(4), Operator: types.PLUS, Right: ast.Integer(5)},
			},
		}),
		exprStmt(ast.Call{Function: ast.Ident("noop")}),
	}}, program)
}

func TestCallOnFunctionLiteral(t *testing.T) {
	assert.Equal(t, "fn(x) { x }(5)", parse(t, "fn(x) { x }(5)").String())
}

// ----------------------------------------------------------------------------
// Diagnostics

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"let missing name", "let = 5;", "expected next token to be IDENT, got = instead"},
		{"let missing assign", "let x 5;", "expected next token to be =, got INT instead"},
		{"if missing paren", "if x { 1 }", "expected next token to be (, got IDENT instead"},
		{"if missing close paren", "if (x { 1 }", "expected next token to be ), got { instead"},
		{"if missing brace", "if (x) 1", "expected next token to be {, got INT instead"},
		{"else missing brace", "if (x) { 1 } else 2", "expected next token to be {, got INT instead"},
		{"unclosed group", "(1 + 2", "expected next token to be ), got EOF instead"},
		{"fn missing paren", "fn x", "expected next token to be (, got IDENT instead"},
		{"fn bad parameter", "fn(x, 1) {}", "expected next token to be IDENT, got INT instead"},
		{"fn missing body", "fn(x)", "expected next token to be {, got EOF instead"},
		{"call unclosed", "add(1, 2", "expected next token to be ), got EOF instead"},
		{"illegal", "5 @ 3", "no prefix parse function for ILLEGAL found"},
		{"stray brace", "}", "no prefix parse function for } found"},
		{"overflow", "99999999999999999999", `could not parse "99999999999999999999" as INT`},
		{"unterminated block", "if (x) { 1 ", "block opened at test.mk:1:8 is never closed"},
		{"let missing value before brace", "if (c) { let a = }", "no prefix parse function for } found"},
		{"return missing value before brace", "if (c) { return }", "no prefix parse function for } found"},
		{"infix missing operand before brace", "if (c) { 1 + }", "no prefix parse function for } found"},
		{"let missing semicolon", "let x = fn(a) { a } let y = 2;", "expected next token to be ;, got LET instead"},
		{"return missing semicolon", "return 1 2", "expected next token to be ;, got INT instead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs []string
			assert.NotPanics(t, func() {
				_, errs = parseWithErrors(tt.src)
			})
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.want, errs[0])
		})
	}
}

func TestRecoveryKeepsLaterStatements(t *testing.T) {
	program, errs := parseWithErrors("let = 5; let y = 2;")
	assert.Equal(t, []string{"expected next token to be IDENT, got = instead"}, errs)
	assertTree(t, &ast.Program{Statements: []ast.Statement{
		ast.Let{Name: "y", Value: ast.Integer(2)},
	}}, program)
}

func TestRecoveryStopsAtClosingBrace(t *testing.T) {
	tests := []struct {
		src  string
		want []ast.Statement
	}{
		{
			"if (c) { let a = } let b = 2; b",
			[]ast.Statement{
				exprStmt(ast.If{
					Condition:   ast.Ident("c"),
					Consequence: ast.Block{ast.Let{Name: "a", Value: ast.Invalid{}}},
					Alternative: ast.None{},
				}),
				ast.Let{Name: "b", Value: ast.Integer(2)},
				exprStmt(ast.Ident("b")),
			},
		},
		{
			"if (c) { return } 5",
			[]ast.Statement{
				exprStmt(ast.If{
					Condition:   ast.Ident("c"),
					Consequence: ast.Block{ast.Return{Value: ast.Invalid{}}},
					Alternative: ast.None{},
				}),
				exprStmt(ast.Integer(5)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			program, errs := parseWithErrors(tt.src)
			assert.Equal(t, []string{"no prefix parse function for } found"}, errs)
			assertTree(t, &ast.Program{Statements: tt.want}, program)
		})
	}
}

func TestMissingSemicolonIsReported(t *testing.T) {
	program, errs := parseWithErrors("let x = fn(a) { a } let y = 2; x")
	assert.Equal(t, []string{"expected next token to be ;, got LET instead"}, errs)
	require.Len(t, program.Statements, 2)
	assert.Equal(t, exprStmt(ast.Ident("x")), program.Statements[1])

	_, errs = parseWithErrors("let x = 1 + 2")
	assert.Empty(t, errs)
	_, errs = parseWithErrors("if (c) { return 1 }")
	assert.Empty(t, errs)
}

func TestMalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"", ";", "let", "let x", "let x =", "return", "if", "if (", "if (x", "if (x)",
		"if (x) {", "fn", "fn(", "fn(x", "fn(x,", "fn(x) {", "(", ")", "add(", "add(1,",
		"-", "!", "{ }", "let x = fn(a, b { a };", "}}}}", "1 + + 2",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			assert.NotPanics(t, func() { parseWithErrors(src) })
		})
	}
}

func TestErrAggregatesDiagnostics(t *testing.T) {
	p := NewParser(lexer.NewLexer("let = 1; let x 2;", "agg.mk"))
	p.ParseProgram()

	err := p.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")

	diags := p.Diagnostics()
	require.Len(t, diags, 2)
	located, ok := diags[0].(errors.Located)
	require.True(t, ok)
	assert.Equal(t, 1, located.Span().From.Line)
	assert.Equal(t, 5, located.Span().From.Column)
}

func TestErrIsNilWhenClean(t *testing.T) {
	p := NewParser(lexer.NewLexer("1 + 2", ""))
	p.ParseProgram()
	assert.NoError(t, p.Err())
	assert.Empty(t, p.Errors())
}

// ----------------------------------------------------------------------------
// Rendering round trip

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"a + b * c + d / e - f",
		"-a * b",
		"!(true == false) != x",
		"a - b - c",
		"(1 + 2) * -(3 - 4) / +5",
		"1.25 <= 2 >= x",
		"if (x < y) { x } else { y }",
		"if (x) { let a = 1; return a; }",
		"fn(x, y) { x + y }(1, 2)",
		"let z = add(1, mul(2, 3));",
		"return -1;",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			first := parse(t, src).String()
			second := parse(t, first).String()
			assert.Equal(t, first, second)
		})
	}
}

func TestRoundTripBuiltTrees(t *testing.T) {
	tests := []struct {
		tree ast.Node
		want string
	}{
		{ast.Integer(-5), "(-5)"},
		{ast.Float(-1.5), "(-1.5)"},
		{ast.Infix{Left: ast.Integer(1), Operator: types.MINUS, Right: ast.Integer(-2)}, "(1 - (-2))"},
		{ast.Prefix{Operator: types.MINUS, Right: ast.Integer(-3)}, "(-(-3))"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tree.String())
			assert.Equal(t, tt.want, parse(t, tt.want).String())
		})
	}
}
