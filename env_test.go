package r5rs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndLookup(t *testing.T) {
	env := NewEnv()
	Define(env, "x", NewNumber(1))
	v, err := Lookup(env, "x")
	require.NoError(t, err)
	assert.Equal(t, NewNumber(1), v)
}

func TestLookupUnbound(t *testing.T) {
	env := NewEnv()
	_, err := Lookup(env, "nope")
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindUnboundVar, se.Kind)
}

func TestDefineRebindsHeadFrame(t *testing.T) {
	env := NewEnv()
	Define(env, "x", NewNumber(1))
	Define(env, "x", NewNumber(2))
	v, err := Lookup(env, "x")
	require.NoError(t, err)
	assert.Equal(t, NewNumber(2), v)
}

func TestSetMutatesParentCellThroughChild(t *testing.T) {
	parent := NewEnv()
	Define(parent, "x", NewNumber(1))
	child := Extend(parent, nil, nil)

	require.NoError(t, Set(child, "x", NewNumber(9)))

	v, err := Lookup(parent, "x")
	require.NoError(t, err)
	assert.Equal(t, NewNumber(9), v)
}

func TestDefineInChildShadowsParent(t *testing.T) {
	parent := NewEnv()
	Define(parent, "x", NewNumber(1))
	child := Extend(parent, nil, nil)
	Define(child, "x", NewNumber(2))

	cv, _ := Lookup(child, "x")
	pv, _ := Lookup(parent, "x")
	assert.Equal(t, NewNumber(2), cv)
	assert.Equal(t, NewNumber(1), pv)
}

func TestSetUnboundFails(t *testing.T) {
	env := NewEnv()
	err := Set(env, "nope", NewNumber(1))
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, KindUnboundVar, se.Kind)
}
