package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("Secret123!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Secret123!", hashed)

	assert.NoError(t, ComparePassword(hashed, "Secret123!"))
	assert.Error(t, ComparePassword(hashed, "wrong-password"))
}

func TestFakeHashIsValidBcrypt(t *testing.T) {
	// The burn path depends on FakeHash being structurally valid: an
	// invalid hash short-circuits bcrypt and skips the cost loop.
	err := bcrypt.CompareHashAndPassword([]byte(FakeHash), []byte("anything"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)

	cost, err := bcrypt.Cost([]byte(FakeHash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestBurnComparisonDoesNotPanic(t *testing.T) {
	BurnComparison("")
	BurnComparison("some candidate password")
}
