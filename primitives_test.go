package r5rs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticPrimitivesRequireTwoArgs(t *testing.T) {
	in := NewInterp()
	_, err := in.EvalString("(+ 1)")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindNumArgs, se.Kind)
}

func TestDivisionByZero(t *testing.T) {
	in := NewInterp()
	_, err := in.EvalString("(/ 1 0)")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindDefault, se.Kind)
}

func TestQuotientRemainderMod(t *testing.T) {
	in := NewInterp()
	v, err := in.EvalString("(quotient 7 2)")
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())

	v, err = in.EvalString("(remainder 7 2)")
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())

	v, err = in.EvalString("(remainder -7 3)")
	require.NoError(t, err)
	assert.Equal(t, "-1", v.String())

	v, err = in.EvalString("(mod -7 3)")
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())
}

func TestNumericComparisonCoercion(t *testing.T) {
	in := NewInterp()
	v, err := in.EvalString(`(= 2 "2")`)
	require.NoError(t, err)
	assert.Equal(t, "#t", v.String())

	v, err = in.EvalString(`(< 1 "2")`)
	require.NoError(t, err)
	assert.Equal(t, "#t", v.String())
}

func TestStringComparisons(t *testing.T) {
	in := NewInterp()
	v, err := in.EvalString(`(string<? "abc" "abd")`)
	require.NoError(t, err)
	assert.Equal(t, "#t", v.String())
}

func TestBooleanOps(t *testing.T) {
	in := NewInterp()
	v, err := in.EvalString("(&& #t #f)")
	require.NoError(t, err)
	assert.Equal(t, "#f", v.String())

	v, err = in.EvalString("(|| #f #t)")
	require.NoError(t, err)
	assert.Equal(t, "#t", v.String())
}

func TestCarOfEmptyListErrors(t *testing.T) {
	in := NewInterp()
	_, err := in.EvalString("(car '())")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindTypeMismatch, se.Kind)
}

func TestConsOntoNonList(t *testing.T) {
	in := NewInterp()
	v, err := in.EvalString("(cons 1 2)")
	require.NoError(t, err)
	assert.Equal(t, "(1 . 2)", v.String())
}

func TestNumberToStringEqualCoherence(t *testing.T) {
	in := NewInterp()
	v, err := in.EvalString("(equal? 42 (number->string 42))")
	require.NoError(t, err)
	assert.Equal(t, "#t", v.String())
}
