package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, h.Compare(hash, "correct horse battery"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Kx8!mQ2#vL"))
	assert.Contains(t, ValidatePassword("short"), "This password is too short. It must contain at least 8 characters.")
	assert.Contains(t, ValidatePassword("123456789"), "This password is entirely numeric.")
	assert.Contains(t, ValidatePassword("Password"), "This password is too common.")
	assert.Contains(t,
		ValidatePassword("janedoe2024!", "jane.doe@example.com", "janedoe"),
		"The password is too similar to your personal information.",
	)
}
