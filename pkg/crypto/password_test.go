package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("secret123", first))
	assert.True(t, CheckPassword("secret123", second))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("secret123", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("secret123", ""))
}
