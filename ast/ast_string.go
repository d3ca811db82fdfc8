package ast

import (
	"strconv"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
	}
	return b.String()
}

func (v Let) String() string {
	return "let " + string(v.Name) + " = " + str(v.Value) + ";"
}

func (v Return) String() string {
	return "return " + str(v.Value) + ";"
}

func (v ExpressionStatement) String() string {
	return str(v.Expression)
}

func (v Block) String() string {
	if len(v) == 0 {
		return "{ }"
	}
	parts := make([]string, 0, len(v))
	for _, s := range v {
		parts = append(parts, s.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (v None) String() string { return "" }

func (v Ident) String() string { return string(v) }

// Negative literals only come from hand-built trees. They render the way the
// parser would have produced them, as a prefix minus.
func negative(s string) string {
	if strings.HasPrefix(s, "-") {
		return "(" + s + ")"
	}
	return s
}

func (v Integer) String() string { return negative(strconv.FormatInt(int64(v), 10)) }

func (v Float) String() string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return negative(s)
}

func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }

func (v Prefix) String() string {
	return "(" + v.Operator.String() + str(v.Right) + ")"
}

func (v Infix) String() string {
	return "(" + str(v.Left) + " " + v.Operator.String() + " " + str(v.Right) + ")"
}

func (v If) String() string {
	s := "if (" + str(v.Condition) + ") " + v.Consequence.String()
	if _, ok := v.Alternative.(None); !ok && v.Alternative != nil {
		s += " else " + v.Alternative.String()
	}
	return s
}

func (v Function) String() string {
	params := make([]string, 0, len(v.Parameters))
	for _, p := range v.Parameters {
		params = append(params, string(p))
	}
	return "fn(" + strings.Join(params, ", ") + ") " + v.Body.String()
}

func (v Call) String() string {
	args := make([]string, 0, len(v.Arguments))
	for _, a := range v.Arguments {
		args = append(args, str(a))
	}
	return str(v.Function) + "(" + strings.Join(args, ", ") + ")"
}

func (v Invalid) String() string { return "<invalid>" }

func str(e Expression) string {
	if e == nil {
		return Invalid{}.String()
	}
	return e.String()
}
