package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"monke/lexer"
	"monke/object"
	"monke/parser"
)

func testEval(t *testing.T, input string) object.Value {
	t.Helper()
	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parser errors for %q", input)
	env := object.NewEnvironment()
	return Eval(program, env)
}

func TestEvalIntegerExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"-10", -10},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		integer, ok := val.(*object.Integer)
		require.Truef(t, ok, "input %q", tt.input)
		require.Equal(t, tt.expected, integer.Value, "input %q", tt.input)
	}
}

func TestDivisionByZeroIsNull(t *testing.T) {
	val := testEval(t, "5 / 0")
	require.Equal(t, Null, val)
}

func TestFloorDivision(t *testing.T) {
	require.Equal(t, int64(-3), testEval(t, "-5 / 2").(*object.Integer).Value)
}

func TestBangOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!!true", true},
		{"!!false", false},
		{"!!5", true},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		boolean, ok := val.(*object.Boolean)
		require.True(t, ok)
		require.Equal(t, tt.expected, boolean.Value)
	}
}

func TestIfElseExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"if (true) { 10 }", int64(10)},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", int64(10)},
		{"if (1 < 2) { 10 }", int64(10)},
		{"if (1 > 2) { 10 }", nil},
		{"if (1 > 2) { 10 } else { 20 }", int64(20)},
		{"if (1 < 2) { 10 } else { 20 }", int64(10)},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		if tt.expected == nil {
			require.Equal(t, Null, val)
			continue
		}
		integer, ok := val.(*object.Integer)
		require.True(t, ok)
		require.Equal(t, tt.expected, integer.Value)
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5 + true;", "type mismatch: INTEGER + BOOLEAN"},
		{"5 + true; 5;", "type mismatch: INTEGER + BOOLEAN"},
		{"-true", "unknown operator: -BOOLEAN"},
		{"true + false;", "unknown operator: BOOLEAN + BOOLEAN"},
		{"5; true + false; 5", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { true + false; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"foobar", "identifier not found: foobar"},
		{`"Hello" - "World"`, "unknown operator: STRING - STRING"},
		{`{"name": "Monke"}[fn(x) { x }];`, "unusable as hash key: FUNCTION"},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		errObj, ok := val.(*object.Error)
		require.Truef(t, ok, "no error object returned for %q, got %T", tt.input, val)
		require.Equal(t, tt.expected, errObj.Message)
	}
}

func TestScenario_MismatchInspect(t *testing.T) {
	val := testEval(t, "5 + true")
	require.Equal(t, "ERROR: type mismatch: INTEGER + BOOLEAN", val.Inspect())
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		integer := val.(*object.Integer)
		require.Equal(t, tt.expected, integer.Value)
	}
}

func TestClosures(t *testing.T) {
	input := `
let newAdder = fn(a) { fn(b) { a + b }; };
let add2 = newAdder(2);
add2(3);`
	val := testEval(t, input)
	integer, ok := val.(*object.Integer)
	require.True(t, ok)
	require.Equal(t, int64(5), integer.Value)
}

func TestFibonacciScenario(t *testing.T) {
	input := `let fib = fn(x){ if (x==0){0} else { if (x==1){1} else { fib(x-1)+fib(x-2) } } }; fib(15)`
	val := testEval(t, input)
	require.Equal(t, "610", val.Inspect())
}

func TestMapScenario(t *testing.T) {
	input := `let map = fn(arr,f){ let iter = fn(a,acc){ if (len(a)==0){acc} else { iter(rest(a), push(acc, f(first(a)))) } }; iter(arr, []) }; map([1,2,3], fn(x){ x*2 })`
	val := testEval(t, input)
	require.Equal(t, "[2, 4, 6]", val.Inspect())
}

func TestHashIndexScenario(t *testing.T) {
	input := `{"one":1, "two":2}["one"] + {"one":1, "two":2}["two"]`
	val := testEval(t, input)
	require.Equal(t, "3", val.Inspect())
}

func TestStringConcatAndLen(t *testing.T) {
	input := `let s = "mon" + "key"; len(s)`
	val := testEval(t, input)
	require.Equal(t, "6", val.Inspect())
}

func TestArrayIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"[1, 2, 3][0]", int64(1)},
		{"[1, 2, 3][1]", int64(2)},
		{"[1, 2, 3][2]", int64(3)},
		{"[1, 2, 3][-1]", int64(3)},
		{"[1, 2, 3][-3]", int64(1)},
		{"[1, 2, 3][3]", nil},
		{"[1, 2, 3][-4]", nil},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		if tt.expected == nil {
			require.Equal(t, Null, val)
			continue
		}
		require.Equal(t, tt.expected, val.(*object.Integer).Value)
	}
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{`len("")`, int64(0)},
		{`len("four")`, int64(4)},
		{`len(1)`, "argument to `len` not supported, got INTEGER"},
		{`len("one", "two")`, "wrong number of arguments. got=2, want=1"},
		{`first([1, 2, 3])`, int64(1)},
		{`last([1, 2, 3])`, int64(3)},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		switch expected := tt.expected.(type) {
		case int64:
			require.Equal(t, expected, val.(*object.Integer).Value)
		case string:
			errObj, ok := val.(*object.Error)
			require.True(t, ok)
			require.Equal(t, expected, errObj.Message)
		}
	}
}

func TestClosureObservesLaterWritesToEnclosingScope(t *testing.T) {
	input := `
let makeGreeter = fn() {
  let greeting = "hi";
  let greeter = fn() { greeting };
  let greeting = "bye";
  greeter()
};
makeGreeter()`
	val := testEval(t, input)
	require.Equal(t, "bye", val.(*object.String).Value)
}
