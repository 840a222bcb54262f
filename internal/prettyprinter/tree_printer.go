// Package prettyprinter renders a parsed expression back out as the
// parenthesized S-expression form spec.md §6's `parse` sub-command
// prints: `(OP A B)` for binary/logical, `(OP R)` for unary, `(group E)`
// for grouping, and literals rendered by their own kind-specific rule.
package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/mgrafton/loxwalk/internal/ast"
)

// Print renders expr as the spec's S-expression form.
func Print(expr ast.Expression) string {
	var buf bytes.Buffer
	writeExpr(&buf, expr)
	return buf.String()
}

func writeExpr(buf *bytes.Buffer, expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		buf.WriteString(formatLiteral(e.Value))
	case *ast.Grouping:
		parenthesize(buf, "group", e.Inner)
	case *ast.Unary:
		parenthesize(buf, e.Op.Lexeme, e.Right)
	case *ast.Binary:
		parenthesize(buf, e.Op.Lexeme, e.Left, e.Right)
	case *ast.Logical:
		parenthesize(buf, e.Op.Lexeme, e.Left, e.Right)
	case *ast.Variable:
		buf.WriteString(e.Name.Lexeme)
	case *ast.Assignment:
		parenthesize(buf, "="+e.Name.Lexeme, e.Value)
	case *ast.This:
		buf.WriteString("this")
	case *ast.Call:
		parenthesizeExprs(buf, "call", append([]ast.Expression{e.Callee}, e.Args...))
	case *ast.Get:
		parenthesize(buf, "."+e.Name.Lexeme, e.Object)
	case *ast.Set:
		parenthesize(buf, "set-"+e.Name.Lexeme, e.Object, e.Value)
	default:
		buf.WriteString("<unknown expr>")
	}
}

func parenthesize(buf *bytes.Buffer, name string, exprs ...ast.Expression) {
	parenthesizeExprs(buf, name, exprs)
}

func parenthesizeExprs(buf *bytes.Buffer, name string, exprs []ast.Expression) {
	buf.WriteByte('(')
	buf.WriteString(name)
	for _, e := range exprs {
		buf.WriteByte(' ')
		writeExpr(buf, e)
	}
	buf.WriteByte(')')
}

// formatLiteral renders a Literal's payload per spec.md §6: numbers use
// the shortest decimal form that still shows a fractional part
// (`3` prints as `3.0`), strings print as their raw contents, and
// true/false/nil print as their keywords.
func formatLiteral(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatFloat(v)
	case string:
		return v
	default:
		return "nil"
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' {
			return s
		}
	}
	return s + ".0"
}
