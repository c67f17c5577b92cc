package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	valid := []string{"Password1", "Abcdefg1", "A1b2c3d4", "XYZ12345"}
	for _, pwd := range valid {
		assert.NoError(t, ValidatePassword(pwd), pwd)
	}

	invalid := []string{
		"Short1",      // too short
		"alllower1",   // no uppercase
		"NoDigitsHere",
		"Pass word1",  // space not allowed
		"Password1!",  // punctuation not allowed
		"12345678",    // no letter, no uppercase
	}
	for _, pwd := range invalid {
		assert.Error(t, ValidatePassword(pwd), pwd)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", hash)

	assert.True(t, CheckPasswordHash("Password1", hash))
	assert.False(t, CheckPasswordHash("password1", hash))
	assert.False(t, CheckPasswordHash("Password1", "not-a-hash"))
}
