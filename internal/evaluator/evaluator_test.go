package evaluator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mgrafton/loxwalk/internal/evaluator"
	"github.com/mgrafton/loxwalk/internal/parser"
	"github.com/mgrafton/loxwalk/internal/pipeline"
	"github.com/mgrafton/loxwalk/internal/resolver"
	"github.com/mgrafton/loxwalk/internal/scanner"
)

// run scans, parses, resolves and interprets src, capturing everything
// written to stdout. It fails the test outright on any scan/parse error,
// since those phases are covered by their own packages' tests.
func run(t *testing.T, src string) (string, *evaluator.Evaluator) {
	t.Helper()
	ctx := pipeline.NewContext(src)
	tokens, scanErrs := scanner.New(src).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx = (&parser.Processor{}).Process(ctx)
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
	depths, resolveErrs := resolver.Resolve(ctx.Statements)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}

	eval := evaluator.New(depths)
	var out bytes.Buffer
	eval.Out = &out
	if err := eval.Interpret(ctx.Statements); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String(), eval
}

// runExpectError is the same as run but asserts a runtime error occurs
// instead of failing on one, and returns the evaluator so the test can
// inspect its state after the error.
func runExpectError(t *testing.T, src string) *evaluator.Evaluator {
	t.Helper()
	ctx := pipeline.NewContext(src)
	tokens, scanErrs := scanner.New(src).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx = (&parser.Processor{}).Process(ctx)
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Errors)
	}
	depths, resolveErrs := resolver.Resolve(ctx.Statements)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}

	eval := evaluator.New(depths)
	var out bytes.Buffer
	eval.Out = &out
	if err := eval.Interpret(ctx.Statements); err == nil {
		t.Fatal("expected a runtime error, got none")
	}
	return eval
}

func TestEvaluatorArithmeticAndPrint(t *testing.T) {
	out, _ := run(t, `print 1 + 2 * 3;`)
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

func TestEvaluatorStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	if out != "foobar\n" {
		t.Fatalf("got %q, want %q", out, "foobar\n")
	}
}

func TestEvaluatorClosuresShareEnvironment(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	want := "1\n2\n3\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEvaluatorLogicalShortCircuitDoesNotEvaluateRight(t *testing.T) {
	out, _ := run(t, `
		fun sideEffect() {
			print "evaluated";
			return true;
		}
		if (false and sideEffect()) { }
		if (true or sideEffect()) { }
		print "done";
	`)
	if strings.Contains(out, "evaluated") {
		t.Fatalf("short-circuit failed, right operand evaluated: %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Fatalf("expected evaluation to continue past short-circuited ifs: %q", out)
	}
}

func TestEvaluatorBreakExitsLoop(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		while (true) {
			if (i >= 3) break;
			print i;
			i = i + 1;
		}
	`)
	want := "0\n1\n2\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEvaluatorContinueSkipsRestOfBody(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		while (i < 5) {
			i = i + 1;
			if (i == 3) continue;
			print i;
		}
	`)
	want := "1\n2\n4\n5\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEvaluatorForLoopDesugaring(t *testing.T) {
	out, _ := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	want := "0\n1\n2\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEvaluatorContinueInForLoopStillRunsIncrement(t *testing.T) {
	out, _ := run(t, `
		var x = 0;
		for (var i = 0; i < 3; i = i + 1) {
			if (i == 1) continue;
			x = x + i;
		}
		print x;
	`)
	if out != "2\n" {
		t.Fatalf("got %q, want %q", out, "2\n")
	}
}

func TestEvaluatorClassInitAndMethodDispatch(t *testing.T) {
	out, _ := run(t, `
		class Counter {
			init(start) {
				this.value = start;
			}
			increment() {
				this.value = this.value + 1;
				return this.value;
			}
		}
		var c = Counter(10);
		print c.increment();
		print c.increment();
	`)
	want := "11\n12\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEvaluatorInitAlwaysReturnsThisEvenWithBareReturn(t *testing.T) {
	out, _ := run(t, `
		class Thing {
			init() {
				this.ready = true;
				return;
			}
		}
		var t = Thing();
		print t.ready;
	`)
	if out != "true\n" {
		t.Fatalf("got %q, want %q", out, "true\n")
	}
}

func TestEvaluatorDivideByZeroIsRuntimeError(t *testing.T) {
	ctx := pipeline.NewContext(`print 1 / 0;`)
	tokens, scanErrs := scanner.New(ctx.SourceCode).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx = (&parser.Processor{}).Process(ctx)
	depths, resolveErrs := resolver.Resolve(ctx.Statements)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}
	eval := evaluator.New(depths)
	err := eval.Interpret(ctx.Statements)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Denominator cannot be 0") {
		t.Fatalf("got error %q, want it to contain %q", err.Error(), "Denominator cannot be 0")
	}
}

func TestEvaluatorUndefinedVariableIsRuntimeError(t *testing.T) {
	runExpectError(t, `print undeclared;`)
}

func TestEvaluatorCallingNonCallableIsRuntimeError(t *testing.T) {
	runExpectError(t, `var x = 1; x();`)
}

func TestEvaluatorAccessingPropertyOnNonInstanceIsRuntimeError(t *testing.T) {
	runExpectError(t, `var x = 1; print x.field;`)
}

func TestEvaluatorFunctionsAreNeverEqual(t *testing.T) {
	out, _ := run(t, `
		fun f() {}
		print f == f;
	`)
	if out != "false\n" {
		t.Fatalf("got %q, want %q", out, "false\n")
	}
}

func TestEvaluatorMismatchedTypeEqualityIsFalse(t *testing.T) {
	out, _ := run(t, `print 1 == "1";`)
	if out != "false\n" {
		t.Fatalf("got %q, want %q", out, "false\n")
	}
}

func TestEvaluatorCallStackUnwindsOnSuccessfulReturn(t *testing.T) {
	_, eval := run(t, `
		fun f() { return 1; }
		f();
	`)
	if len(eval.CallStack) != 0 {
		t.Fatalf("call stack not unwound after successful call: %v", eval.CallStack)
	}
}

func TestEvaluatorCallStackPreservedOnRuntimeError(t *testing.T) {
	eval := runExpectError(t, `
		fun inner() { return 1 / 0; }
		fun outer() { return inner(); }
		outer();
	`)
	if len(eval.CallStack) != 2 {
		t.Fatalf("got call stack %v, want 2 frames (outer, inner)", eval.CallStack)
	}
}

func TestEvaluatorClockIsCallableWithZeroArity(t *testing.T) {
	out, _ := run(t, `print clock() >= 0;`)
	if out != "true\n" {
		t.Fatalf("got %q, want %q", out, "true\n")
	}
}

func TestEvaluatorRecursiveFunction(t *testing.T) {
	out, _ := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	if out != "55\n" {
		t.Fatalf("got %q, want %q", out, "55\n")
	}
}
