package vm

import (
	"bytes"
	"strings"
	"testing"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	in := bytecode.NewInterner()
	fn, err := compiler.Compile(source, in)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	machine := New(in)
	var out bytes.Buffer
	machine.SetOutput(&out)
	runErr := machine.Interpret(fn)
	return out.String(), runErr
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want 7", out)
	}
}

func TestStringConcatenationAndEquality(t *testing.T) {
	out, err := run(t, `var a = "foo" + "bar"; print a == "foobar";`)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Fatalf("got %q, want true", out)
	}
}

func TestForLoopAccumulation(t *testing.T) {
	out, err := run(t, `
		var sum = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if strings.TrimSpace(out) != "15" {
		t.Fatalf("got %q, want 15", out)
	}
}

func TestWhileLoopAndLogicalShortCircuit(t *testing.T) {
	out, err := run(t, `
		var i = 0;
		var seen = false;
		while (i < 3 and !seen) {
			i = i + 1;
			if (i == 3) seen = true;
		}
		print i;
		print seen;
	`)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "3" || lines[1] != "true" {
		t.Fatalf("got %v, want [3 true]", lines)
	}
}

func TestRecursiveFunctionCall(t *testing.T) {
	out, err := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if strings.TrimSpace(out) != "55" {
		t.Fatalf("got %q, want 55", out)
	}
}

func TestNegatingNonNumberIsRuntimeError(t *testing.T) {
	_, err := run(t, `print -"abc";`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Operand must be a number") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, err := run(t, `print missing;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined variable") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallingANonFunctionIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Can only call functions") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClockNativeReturnsNumber(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Fatalf("got %q, want true", out)
	}
}

func TestRuntimeErrorIncludesFrameTrace(t *testing.T) {
	_, err := run(t, `
		fun inner() { return 1 + "x"; }
		fun outer() { return inner(); }
		outer();
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "in inner()") || !strings.Contains(msg, "in outer()") || !strings.Contains(msg, "in script") {
		t.Fatalf("expected a full frame trace, got: %s", msg)
	}
}
