package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPasswordHashing - хеш проходит проверку, чужой пароль нет
func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-1")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-1", hash)

	assert.True(t, CheckPasswordHash("correct-horse-1", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

// TestValidatePassword - минимальная длина
func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough-1"))
}
