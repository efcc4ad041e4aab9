package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(InvitationTokenSize)
	require.NoError(t, err)
	b, err := RandomToken(InvitationTokenSize)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NotContains(t, a, "/")
	require.NotContains(t, a, "=")

	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	require.Len(t, raw, InvitationTokenSize)
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	require.True(t, ComparePassword(hashed, "secret123"))
	require.False(t, ComparePassword(hashed, "wrong"))
}
