package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pingboard/backend/internal/models"
	"github.com/pingboard/backend/internal/utils"
)

// CreateTestUser creates an active user directly in the database.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestPing creates a ping for the given author directly in the database.
// Hashtag and SEO derivation is skipped; tests that need those go through the service.
func CreateTestPing(t *testing.T, db *gorm.DB, author *models.User, text string, category models.Category) *models.Ping {
	ping := &models.Ping{
		ID:        uuid.New(),
		Text:      text,
		Category:  category,
		Timestamp: time.Now().UTC(),
		UserID:    author.ID,
	}
	if err := db.Create(ping).Error; err != nil {
		t.Fatalf("Failed to create test ping: %v", err)
	}
	return ping
}
