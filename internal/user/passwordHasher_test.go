package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash([]byte("Secret1"))
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", string(hash))

	assert.NoError(t, h.Compare(hash, []byte("Secret1")))
	assert.Error(t, h.Compare(hash, []byte("secret1")))
}

func TestBcryptHasher_ZeroValueUsesDefaultCost(t *testing.T) {
	hash, err := BcryptHasher{}.Hash([]byte("Secret1"))
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash([]byte("Secret1"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("Secret1"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
