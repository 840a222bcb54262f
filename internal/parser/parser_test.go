package parser_test

import (
	"testing"

	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/parser"
	"github.com/mgrafton/loxwalk/internal/pipeline"
	"github.com/mgrafton/loxwalk/internal/prettyprinter"
	"github.com/mgrafton/loxwalk/internal/scanner"
)

func parseExpr(t *testing.T, src string) (ast.Expression, *pipeline.Context) {
	t.Helper()
	ctx := pipeline.NewContext(src)
	tokens, scanErrs := scanner.New(src).ScanTokens()
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx.Errors = append(ctx.Errors, scanErrs...)
	p := parser.New(ctx.TokenStream, ctx)
	return p.ParseExpression(), ctx
}

func parseProgram(t *testing.T, src string) ([]ast.Statement, *pipeline.Context) {
	t.Helper()
	ctx := pipeline.NewContext(src)
	tokens, scanErrs := scanner.New(src).ScanTokens()
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx.Errors = append(ctx.Errors, scanErrs...)
	proc := &parser.Processor{}
	ctx = proc.Process(ctx)
	return ctx.Statements, ctx
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"arithmetic_precedence", "1 + 2 * 3", "(+ 1.0 (* 2.0 3.0))"},
		{"unary_minus", "-5", "(- 5.0)"},
		{"grouping", "(1 + 2) * 3", "(* (group (+ 1.0 2.0)) 3.0)"},
		{"comparison_chain", "1 < 2 == 3 > 4", "(== (< 1.0 2.0) (> 3.0 4.0))"},
		{"logical_and_or", "true and false or nil", "(or (and true false) nil)"},
		{"string_literal", `"hi"`, "hi"},
		{"this_keyword", "this", "this"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, ctx := parseExpr(t, tt.input)
			if ctx.HasErrors() {
				t.Fatalf("unexpected parse errors: %v", ctx.Errors)
			}
			got := prettyprinter.Print(expr)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAssignmentDesugaring(t *testing.T) {
	expr, ctx := parseExpr(t, "a = 5")
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
	if _, ok := expr.(*ast.Assignment); !ok {
		t.Fatalf("got %T, want *ast.Assignment", expr)
	}
}

func TestParseSetDesugaring(t *testing.T) {
	expr, ctx := parseExpr(t, "obj.field = 5")
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
	set, ok := expr.(*ast.Set)
	if !ok {
		t.Fatalf("got %T, want *ast.Set", expr)
	}
	if set.Name.Lexeme != "field" {
		t.Errorf("got field name %q, want %q", set.Name.Lexeme, "field")
	}
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	_, ctx := parseExpr(t, "1 + 2 = 5")
	if !ctx.HasErrors() {
		t.Fatal("expected an error for an invalid assignment target")
	}
}

func TestParseForLoopDesugaring(t *testing.T) {
	stmts, ctx := parseProgram(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(stmts))
	}
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("desugared for-loop is %T, want *ast.BlockStmt", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("got %d statements in desugared block, want 2 (init, while)", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("first desugared statement is %T, want *ast.VarStmt", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second desugared statement is %T, want *ast.WhileStmt", block.Statements[1])
	}
	if _, ok := whileStmt.Body.(*ast.PrintStmt); !ok {
		t.Fatalf("while body is %T, want *ast.PrintStmt (unwrapped, not folded with the increment)", whileStmt.Body)
	}
	if whileStmt.Increment == nil {
		t.Fatal("desugared while statement has no Increment")
	}
}

func TestParseBreakOutsideLoopIsError(t *testing.T) {
	_, ctx := parseProgram(t, "break;")
	if !ctx.HasErrors() {
		t.Fatal("expected an error for break outside a loop")
	}
}

func TestParseContinueOutsideLoopIsError(t *testing.T) {
	_, ctx := parseProgram(t, "continue;")
	if !ctx.HasErrors() {
		t.Fatal("expected an error for continue outside a loop")
	}
}

func TestParseBreakInsideLoopIsAllowed(t *testing.T) {
	_, ctx := parseProgram(t, "while (true) { break; }")
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
}

func TestParseTooManyArgumentsIsError(t *testing.T) {
	args := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			args += ", "
		}
		args += "1"
	}
	_, ctx := parseExpr(t, "f("+args+")")
	if !ctx.HasErrors() {
		t.Fatal("expected an error for more than 255 arguments")
	}
}

func TestParseSynchronizationSurfacesMultipleErrors(t *testing.T) {
	_, ctx := parseProgram(t, "var ; var ; var ;")
	if len(ctx.Errors) < 3 {
		t.Fatalf("got %d errors, want at least 3 (synchronization should let each bad declaration report)", len(ctx.Errors))
	}
}

func TestParseClassDeclaration(t *testing.T) {
	stmts, ctx := parseProgram(t, `class Point { init(x, y) { this.x = x; this.y = y; } }`)
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
	classStmt, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassStmt", stmts[0])
	}
	if len(classStmt.Decl.Methods) != 1 || classStmt.Decl.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("unexpected methods: %+v", classStmt.Decl.Methods)
	}
}
