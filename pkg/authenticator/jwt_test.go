package authenticator_test

import (
	"testing"
	"time"

	"github.com/alumnet-lab/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type accessToken struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTStruct(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, accessToken{ID: "u1", TenantID: "t1", Role: "alumni"})
	require.NoError(t, err)

	var got accessToken
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, accessToken{ID: "u1", TenantID: "t1", Role: "alumni"}, got)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Nanosecond, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, authenticator.NewTokenEngine("other").Verify(token, &msg))
}
