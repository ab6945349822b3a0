package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePrincipal_Deterministic(t *testing.T) {
	a := DerivePrincipal("owner@example.com")
	b := DerivePrincipal("  OWNER@example.com ")
	assert.Equal(t, a, b, "normalization must not change the principal")
	assert.True(t, strings.HasPrefix(string(a), "PR"))
	assert.Len(t, string(a), 42)

	c := DerivePrincipal("other@example.com")
	assert.NotEqual(t, a, c)
}

func TestNewAccessToken_Claims(t *testing.T) {
	at, err := NewAccessToken("secret", "PRabc", "OWNER", 15)
	require.NoError(t, err)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "PRabc", claims["sub"])
	assert.Equal(t, "OWNER", claims["role"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("secret", "PRabc", "USER", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestRefreshToken_HashStable(t *testing.T) {
	rt, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
	assert.NotEqual(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw+"x"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}

func TestPasswordHashing_OutOfRangeCostFallsBack(t *testing.T) {
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("hunter22", cost)
		require.NoError(t, err, "cost %d", cost)
		assert.True(t, VerifyPassword(hash, "hunter22"))
	}
}
