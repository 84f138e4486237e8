package r5rs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalOne(t *testing.T, in *Interp, src string) Value {
	t.Helper()
	v, err := in.EvalString(src)
	require.NoError(t, err, "evaluating %q", src)
	return v
}

func TestSelfEvaluation(t *testing.T) {
	in := NewInterp()
	for _, src := range []string{"1", `"s"`, "#t", "#f"} {
		v, err := ParseOne(src)
		require.NoError(t, err)
		got, err := in.EvalExpr(v)
		require.NoError(t, err)
		assert.True(t, Equal(got, v))
	}
}

func TestQuoteIdentity(t *testing.T) {
	in := NewInterp()
	got := evalOne(t, in, "(quote (1 2 3))")
	assert.Equal(t, "(1 2 3)", got.String())
}

func TestArithmetic(t *testing.T) {
	in := NewInterp()
	got := evalOne(t, in, "(+ 2 3)")
	assert.Equal(t, "5", got.String())
}

func TestFactorial(t *testing.T) {
	in := NewInterp()
	evalOne(t, in, "(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))")
	got := evalOne(t, in, "(fact 6)")
	assert.Equal(t, "720", got.String())
}

func TestClosureCapture(t *testing.T) {
	in := NewInterp()
	evalOne(t, in, "(define (counter) (define n 0) (lambda () (set! n (+ n 1)) n))")
	evalOne(t, in, "(define c (counter))")
	evalOne(t, in, "(c)")
	evalOne(t, in, "(c)")
	got := evalOne(t, in, "(c)")
	assert.Equal(t, "3", got.String())
}

func TestCond(t *testing.T) {
	in := NewInterp()
	got := evalOne(t, in, "(cond ((= 1 2) 'a) ((= 2 2) 'b) (else 'c))")
	assert.Equal(t, "b", got.String())
}

func TestCase(t *testing.T) {
	in := NewInterp()
	got := evalOne(t, in, "(case (* 2 3) ((2 3 5 7) 'prime) ((1 4 6 8 9) 'composite))")
	assert.Equal(t, "composite", got.String())
}

func TestEqualCoercion(t *testing.T) {
	in := NewInterp()
	assert.Equal(t, "#t", evalOne(t, in, `(equal? 2 "2")`).String())
	assert.Equal(t, "#f", evalOne(t, in, `(eqv? 2 "2")`).String())
}

func TestConsCarCdr(t *testing.T) {
	in := NewInterp()
	assert.Equal(t, "1", evalOne(t, in, "(car '(1 . (2 3)))").String())
	assert.Equal(t, "(2 . 3)", evalOne(t, in, "(cdr '(1 2 . 3))").String())
}

func TestSetOnUnboundErrors(t *testing.T) {
	in := NewInterp()
	_, err := in.EvalString("(set! undefined 1)")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindUnboundVar, se.Kind)
}

func TestIfFalsity(t *testing.T) {
	in := NewInterp()
	for _, src := range []string{"(if 0 'a 'b)", `(if "" 'a 'b)`, "(if '() 'a 'b)", "(if #t 'a 'b)"} {
		got := evalOne(t, in, src)
		assert.Equal(t, "a", got.String(), "for %q", src)
	}
	got := evalOne(t, in, "(if #f 'a 'b)")
	assert.Equal(t, "b", got.String())
}

func TestArityVarargs(t *testing.T) {
	in := NewInterp()
	evalOne(t, in, "(define (f a . rest) rest)")
	got := evalOne(t, in, "(f 1 2 3)")
	assert.Equal(t, "(2 3)", got.String())
	got = evalOne(t, in, "(f 1)")
	assert.Equal(t, "()", got.String())

	_, err := in.EvalString("(f)")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindNumArgs, se.Kind)
}

func TestArityExact(t *testing.T) {
	in := NewInterp()
	evalOne(t, in, "(define (f a b) (+ a b))")
	_, err := in.EvalString("(f 1)")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindNumArgs, se.Kind)
}

func TestLambdaAllVarargs(t *testing.T) {
	in := NewInterp()
	evalOne(t, in, "(define f (lambda rest rest))")
	got := evalOne(t, in, "(f 1 2 3)")
	assert.Equal(t, "(1 2 3)", got.String())
}

func TestCondNonBoolTestErrors(t *testing.T) {
	in := NewInterp()
	_, err := in.EvalString("(cond (1 'a))")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindTypeMismatch, se.Kind)
}

func TestApplicationOfNonProcedure(t *testing.T) {
	in := NewInterp()
	_, err := in.EvalString("(1 2 3)")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindNotFunction, se.Kind)
}
