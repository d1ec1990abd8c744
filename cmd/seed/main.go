package main

import (
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/pingboard/backend/internal/config"
	"github.com/pingboard/backend/internal/database"
	"github.com/pingboard/backend/internal/models"
	"github.com/pingboard/backend/internal/utils"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	staffUsername := os.Getenv("STAFF_USERNAME")
	staffEmail := os.Getenv("STAFF_EMAIL")
	staffPassword := os.Getenv("STAFF_PASSWORD")

	if staffUsername == "" || staffEmail == "" || staffPassword == "" {
		log.Fatal("Missing environment variables: STAFF_USERNAME, STAFF_EMAIL, STAFF_PASSWORD")
	}

	// Check if a staff account with this email already exists
	var staff models.User
	result := database.DB.Where("email = ?", staffEmail).First(&staff)

	if result.Error == nil {
		log.Println("Staff user already exists:", staff.Username)
		log.Println("   Email:", staff.Email)
		return
	}

	passwordHash, err := utils.HashPassword(staffPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	staff = models.User{
		ID:           uuid.New(),
		Username:     staffUsername,
		Email:        staffEmail,
		PasswordHash: passwordHash,
		IsStaff:      true,
		IsActive:     true,
	}

	if err := database.DB.Create(&staff).Error; err != nil {
		log.Fatal("Failed to create staff user:", err)
	}

	log.Println("Staff user created successfully!")
	log.Println("   Username:", staff.Username)
	log.Println("   Email:", staff.Email)
}
