package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testPassword      = "SecurePassword123!"
	testWrongPassword = "WrongPassword456!"
)

func TestHashPassword_Success(t *testing.T) {
	// Act
	hash, err := HashPassword(testPassword)

	// Assert
	require.NoError(t, err, "HashPassword should not return error for valid password")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, testPassword, hash, "Hash should be different from password")
	assert.Contains(t, hash, "$argon2id$", "Hash should contain Argon2id identifier")
}

func TestVerifyPassword_Correct(t *testing.T) {
	// Arrange
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	// Act
	match, err := VerifyPassword(testPassword, hash)

	// Assert
	require.NoError(t, err, "VerifyPassword should not return error")
	assert.True(t, match, "Password should match its hash")
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	// Arrange
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	// Act
	match, err := VerifyPassword(testWrongPassword, hash)

	// Assert
	require.NoError(t, err, "VerifyPassword should not return error")
	assert.False(t, match, "Wrong password should not match hash")
}

func TestHashPassword_UniqueHashes(t *testing.T) {
	// Act
	hash1, err1 := HashPassword(testPassword)
	hash2, err2 := HashPassword(testPassword)

	// Assert
	require.NoError(t, err1, "First HashPassword should not fail")
	require.NoError(t, err2, "Second HashPassword should not fail")
	assert.NotEqual(t, hash1, hash2, "Same password should produce different hashes due to unique salt")
}

func TestHashPassword_VeryLongPassword(t *testing.T) {
	// Arrange
	password := strings.Repeat("a", 1000)

	// Act
	hash, err := HashPassword(password)

	// Assert
	require.NoError(t, err, "HashPassword should handle very long passwords")
	assert.NotEmpty(t, hash)

	match, err := VerifyPassword(password, hash)
	require.NoError(t, err)
	assert.True(t, match, "Very long password should match its hash")
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	// Arrange
	invalidHashes := []string{
		"",                                  // Empty
		"plain-text-not-hash",               // Plain text
		"$invalid$format$",                  // Invalid format
		"$argon2id$v=19$m=65536",            // Incomplete
		"$argon2id$v=19$m=65536$corrupted",  // Corrupted
	}

	for _, invalidHash := range invalidHashes {
		t.Run(invalidHash, func(t *testing.T) {
			// Act
			match, err := VerifyPassword(testPassword, invalidHash)

			// Assert
			assert.Error(t, err, "VerifyPassword should return error for invalid hash format")
			assert.False(t, match, "Match should be false for invalid hash")
		})
	}
}

func TestVerifyPassword_UnicodePassword(t *testing.T) {
	// Arrange
	password := "Contraseña_ñ_ü_ç_パスワード"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	// Act
	match, err := VerifyPassword(password, hash)

	// Assert
	require.NoError(t, err)
	assert.True(t, match, "Unicode password should match its hash")
}
