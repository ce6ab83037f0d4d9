package evaluator

import (
	"bytes"
	"testing"

	"lux/internal/lexer"
	"lux/internal/object"
	"lux/internal/parser"
	"lux/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEval(t *testing.T, input string) (object.Object, string) {
	t.Helper()

	p := parser.New(lexer.Scan(input))
	program := p.ParseProgram()
	require.Empty(t, p.Diagnostics(), "parse diagnostics for %q", input)

	interp := New()
	diagnostics := resolver.New(interp.Locals()).Run(program)
	require.Empty(t, diagnostics, "resolve diagnostics for %q", input)

	var out bytes.Buffer
	interp.Out = &out
	return interp.Eval(program), out.String()
}

func evalValue(t *testing.T, input string) object.Object {
	t.Helper()
	result, _ := testEval(t, input)
	require.NotNil(t, result)
	if err, ok := result.(*object.Error); ok {
		t.Fatalf("eval of %q failed: %s", input, err.Message)
	}
	return result
}

func evalOutput(t *testing.T, input string) string {
	t.Helper()
	result, out := testEval(t, input)
	if err, ok := result.(*object.Error); ok {
		t.Fatalf("eval of %q failed: %s", input, err.Message)
	}
	return out
}

func evalError(t *testing.T, input string) *object.Error {
	t.Helper()
	result, _ := testEval(t, input)
	err, ok := result.(*object.Error)
	require.True(t, ok, "expected an error evaluating %q, got %T", input, result)
	return err
}

func TestNumberExpressions(t *testing.T) {
	cases := []struct {
		input    string
		expected float64
	}{
		{"5;", 5},
		{"10.5;", 10.5},
		{"-5;", -5},
		{"-(-5);", 5},
		{"1 + 2 * 3;", 7},
		{"(1 + 2) * 3;", 9},
		{"6 / 2;", 3},
		{"5 - 3;", 2},
		{"2.5 + 0.5;", 3},
		{"1 / 4;", 0.25},
	}

	for _, c := range cases {
		result := evalValue(t, c.input)
		num, ok := result.(*object.Number)
		require.True(t, ok, "input: %s, got %T", c.input, result)
		assert.Equal(t, c.expected, num.Value, "input: %s", c.input)
	}
}

func TestStringConcatenation(t *testing.T) {
	result := evalValue(t, `"foo" + "bar";`)
	assert.Equal(t, "foobar", result.(*object.String).Value)
}

func TestBooleanExpressions(t *testing.T) {
	cases := []struct {
		input    string
		expected bool
	}{
		{"true;", true},
		{"false;", false},
		{"1 < 2;", true},
		{"1 > 2;", false},
		{"2 <= 2;", true},
		{"3 >= 4;", false},
		{"1 == 1;", true},
		{"1 != 1;", false},
		{"nil == nil;", true},
		{"nil == false;", false},
		{`1 == "1";`, false},
		{"0 == false;", false},
		{`"a" == "a";`, true},
		{"!true;", false},
		{"!nil;", true},
		{"!0;", false},
		{`!"";`, false},
		{"!!true;", true},
	}

	for _, c := range cases {
		result := evalValue(t, c.input)
		b, ok := result.(*object.Boolean)
		require.True(t, ok, "input: %s, got %T", c.input, result)
		assert.Equal(t, c.expected, b.Value, "input: %s", c.input)
	}
}

func TestFunctionsCompareByIdentity(t *testing.T) {
	out := evalOutput(t, `
fun f() {}
fun g() {}
var a = f;
print a == f;
print f == g;
`)
	assert.Equal(t, "true\nfalse\n", out)
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{`if (0) print "then"; else print "else";`, "then\n"},
		{`if ("") print "then"; else print "else";`, "then\n"},
		{`if (nil) print "then"; else print "else";`, "else\n"},
		{`if (false) print "then"; else print "else";`, "else\n"},
		{`if (true) print "then";`, "then\n"},
		{`if (nil) print "then";`, ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, evalOutput(t, c.input), "input: %s", c.input)
	}
}

func TestLogicalOperatorsYieldOperands(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{`print 1 and 2;`, "2\n"},
		{`print nil and 2;`, "nil\n"},
		{`print false and 2;`, "false\n"},
		{`print 1 or 2;`, "1\n"},
		{`print nil or "fallback";`, "fallback\n"},
		{`print false or nil;`, "nil\n"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, evalOutput(t, c.input), "input: %s", c.input)
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	out := evalOutput(t, `
fun boom() { return 1 / 0; }
print false and boom();
print true or boom();
`)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestPrintFormatting(t *testing.T) {
	out := evalOutput(t, `
print 2.0;
print 0.5;
print "text";
print nil;
print true;
`)
	assert.Equal(t, "2\n0.5\ntext\nnil\ntrue\n", out)
}

func TestVarAndAssignment(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{`var x = 1; x = 2; print x;`, "2\n"},
		{`var x; print x;`, "nil\n"},
		{`var a; var b; a = b = 3; print a; print b;`, "3\n3\n"},
		{`var x = 1; print x = 5;`, "5\n"},
		{`var x = 1; var x = 2; print x;`, "2\n"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, evalOutput(t, c.input), "input: %s", c.input)
	}
}

func TestBlockScoping(t *testing.T) {
	out := evalOutput(t, `
var a = "outer";
{
	var a = "inner";
	print a;
}
print a;
`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestStaticScopeCapture(t *testing.T) {
	out := evalOutput(t, `
var a = "global";
{
	fun show() { print a; }
	show();
	var a = "block";
	show();
}
`)
	assert.Equal(t, "global\nglobal\n", out)
}

func TestWhileLoop(t *testing.T) {
	out := evalOutput(t, `
var i = 0;
var sum = 0;
while (i < 5) {
	sum = sum + i;
	i = i + 1;
}
print sum;
`)
	assert.Equal(t, "10\n", out)
}

func TestForLoop(t *testing.T) {
	out := evalOutput(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopVariableStaysScoped(t *testing.T) {
	err := evalError(t, `for (var i = 0; i < 3; i = i + 1) {} print i;`)
	assert.Contains(t, err.Message, `undefined variable "i"`)
}

func TestFunctionCalls(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{`fun add(x, y) { return x + y; } print add(2, 3);`, "5\n"},
		{`fun noop() {} print noop();`, "nil\n"},
		{`fun implicit() { 5; } print implicit();`, "nil\n"},
		{`fun bare() { return; } print bare();`, "nil\n"},
		{`fun f() { print f; } f();`, "<fun f()>\n"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, evalOutput(t, c.input), "input: %s", c.input)
	}
}

func TestReturnStopsLoops(t *testing.T) {
	out := evalOutput(t, `
fun first() {
	var i = 0;
	while (true) {
		if (i > 2) { return i; }
		i = i + 1;
	}
}
print first();
`)
	assert.Equal(t, "3\n", out)
}

func TestRecursion(t *testing.T) {
	out := evalOutput(t, `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	assert.Equal(t, "55\n", out)
}

func TestClosures(t *testing.T) {
	out := evalOutput(t, `
fun makeCounter() {
	var i = 0;
	fun count() {
		i = i + 1;
		return i;
	}
	return count;
}
var a = makeCounter();
var b = makeCounter();
a();
a();
print a();
print b();
`)
	assert.Equal(t, "3\n1\n", out)
}

func TestClosureSharesEnvironment(t *testing.T) {
	out := evalOutput(t, `
fun makePair() {
	var n = 0;
	fun inc() { n = n + 1; }
	fun get() { return n; }
	inc();
	inc();
	return get;
}
print makePair()();
`)
	assert.Equal(t, "2\n", out)
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{`1 / 0;`, "division by zero"},
		{`1 / 0.0;`, "division by zero"},
		{`-"a";`, "operand must be a number"},
		{`"a" < "b";`, "operands must be numbers"},
		{`1 + "a";`, "operands must be two numbers or two strings"},
		{`true + true;`, "operands must be two numbers or two strings"},
		{`print missing;`, `undefined variable "missing"`},
		{`missing = 1;`, `undefined variable "missing"`},
		{`var x = 1; x();`, "can only call functions"},
		{`fun f(a, b) {} f(1);`, "expected 2 arguments but got 1"},
		{`fun f() {} f(1);`, "expected 0 arguments but got 1"},
		{`var a = a;`, `undefined variable "a"`},
	}

	for _, c := range cases {
		err := evalError(t, c.input)
		assert.Contains(t, err.Message, c.expected, "input: %s", c.input)
	}
}

func TestRuntimeErrorPosition(t *testing.T) {
	err := evalError(t, `1 / 0;`)
	assert.Equal(t, 2, err.Pos)
}

func TestErrorStopsExecution(t *testing.T) {
	result, out := testEval(t, `
print "before";
1 / 0;
print "after";
`)
	require.IsType(t, &object.Error{}, result)
	assert.Equal(t, "before\n", out)
}

func TestErrorPropagatesThroughCalls(t *testing.T) {
	err := evalError(t, `
fun inner() { return 1 / 0; }
fun outer() { return inner(); }
outer();
`)
	assert.Contains(t, err.Message, "division by zero")
}

func TestClockNative(t *testing.T) {
	result := evalValue(t, `clock();`)
	num, ok := result.(*object.Number)
	require.True(t, ok)
	assert.Greater(t, num.Value, float64(0))
}

func TestSleepNative(t *testing.T) {
	result := evalValue(t, `sleep(0);`)
	assert.Equal(t, object.NIL, result)

	err := evalError(t, `sleep("long");`)
	assert.Contains(t, err.Message, "sleep expects a number")
}

func TestNativeArity(t *testing.T) {
	err := evalError(t, `clock(1);`)
	assert.Contains(t, err.Message, "expected 0 arguments but got 1")
}

func TestNativesAreValues(t *testing.T) {
	out := evalOutput(t, `
var now = clock;
print now;
print now() > 0;
`)
	assert.Equal(t, "<fun (native) clock>\ntrue\n", out)
}
