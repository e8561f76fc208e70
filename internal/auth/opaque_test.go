package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueToken(t *testing.T) {
	raw, hash, err := NewOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, raw, 64)  // 32 bytes hex encoded
	assert.Len(t, hash, 64) // sha-256 hex encoded
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, hash, HashOpaqueToken(raw))
}

func TestNewOpaqueTokenIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		raw, _, err := NewOpaqueToken()
		require.NoError(t, err)
		require.False(t, seen[raw])
		seen[raw] = true
	}
}

func TestHashOpaqueTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashOpaqueToken("token"), HashOpaqueToken("token"))
	assert.NotEqual(t, HashOpaqueToken("token"), HashOpaqueToken("token2"))
}
