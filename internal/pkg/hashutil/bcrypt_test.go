package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	assert.NoError(t, h.Compare(hash, "Passw0rd!"))
	assert.Error(t, h.Compare(hash, "passw0rd!"))
	assert.Error(t, h.Compare("not-a-hash", "Passw0rd!"))
}

func TestBcrypt_SaltsEachHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	a, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	b, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewBcrypt_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
