package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingboard/backend/internal/models"
)

// Test constants
const (
	testSecret          = "test-secret-key-for-jwt-testing"
	testWrongSecret     = "wrong-secret-key-for-jwt-testing"
	testTokenDuration   = 1 * time.Hour
	testExpiredDuration = -1 * time.Hour
)

// Helper function to create test user
func createTestUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "testuser",
		Email:    "test@example.com",
	}
}

func TestGenerateAccessToken_Success(t *testing.T) {
	// Arrange
	user := createTestUser()

	// Act
	token, err := GenerateAccessToken(user, testSecret, testTokenDuration)

	// Assert
	require.NoError(t, err, "GenerateAccessToken should not return error for valid input")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestGenerateRefreshToken_HasJTI(t *testing.T) {
	// Arrange
	user := createTestUser()

	// Act
	token, jti, err := GenerateRefreshToken(user, testSecret, testTokenDuration)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti, "Refresh token should carry a jti for revocation")

	claims, err := ValidateToken(token, testSecret, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID, "Claims ID should match the returned jti")
}

func TestValidateToken_Success(t *testing.T) {
	// Arrange
	user := createTestUser()
	token, err := GenerateAccessToken(user, testSecret, testTokenDuration)
	require.NoError(t, err, "Setup: GenerateAccessToken should not fail")

	// Act
	claims, err := ValidateToken(token, testSecret, TokenTypeAccess)

	// Assert
	require.NoError(t, err, "ValidateToken should not return error for valid token")
	assert.NotNil(t, claims, "Claims should not be nil")
	assert.Equal(t, user.ID, claims.UserID, "UserID should match")
	assert.Equal(t, user.Username, claims.Username, "Username should match")
	assert.Equal(t, TokenTypeAccess, claims.TokenType, "Token type should be access")
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()), "Token should not be expired")
}

func TestValidateToken_WrongType(t *testing.T) {
	// An access token must never pass where a refresh token is expected, and vice versa.
	user := createTestUser()

	accessToken, err := GenerateAccessToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)
	refreshToken, _, err := GenerateRefreshToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	_, err = ValidateToken(accessToken, testSecret, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ValidateToken(refreshToken, testSecret, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	// Arrange
	user := createTestUser()
	token, err := GenerateAccessToken(user, testSecret, testExpiredDuration)
	require.NoError(t, err, "Setup: GenerateAccessToken should not fail")

	// Act
	_, err = ValidateToken(token, testSecret, TokenTypeAccess)

	// Assert
	assert.ErrorIs(t, err, ErrExpiredToken, "Expired token should be rejected")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	user := createTestUser()
	token, err := GenerateAccessToken(user, testSecret, testTokenDuration)
	require.NoError(t, err, "Setup: GenerateAccessToken should not fail")

	// Act
	_, err = ValidateToken(token, testWrongSecret, TokenTypeAccess)

	// Assert
	assert.Error(t, err, "Token signed with a different secret should be rejected")
}

func TestValidateToken_Malformed(t *testing.T) {
	malformedTokens := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	}

	for _, token := range malformedTokens {
		_, err := ValidateToken(token, testSecret, TokenTypeAccess)
		assert.Error(t, err, "Malformed token %q should be rejected", token)
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	// Arrange
	user := createTestUser()
	token, err := GenerateAccessToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	// Flip a character in the payload section
	tampered := token[:len(token)-5] + "xxxxx"

	// Act
	_, err = ValidateToken(tampered, testSecret, TokenTypeAccess)

	// Assert
	assert.Error(t, err, "Tampered token should be rejected")
}
