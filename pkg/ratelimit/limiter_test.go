package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimiter_Burst(t *testing.T) {
	l, err := New(0.001, 2, 10)
	require.NoError(t, err)

	require.True(t, l.Allow("1.1.1.1"))
	require.True(t, l.Allow("1.1.1.1"))
	require.False(t, l.Allow("1.1.1.1"))

	// Other keys have their own bucket.
	require.True(t, l.Allow("2.2.2.2"))
}

func TestLimiter_Eviction(t *testing.T) {
	l, err := New(0.001, 1, 1)
	require.NoError(t, err)

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))

	// "b" evicts "a", so "a" gets a fresh bucket.
	require.True(t, l.Allow("b"))
	require.True(t, l.Allow("a"))
}

func TestNew_InvalidSize(t *testing.T) {
	_, err := New(1, 1, 0)
	require.Error(t, err)
}
