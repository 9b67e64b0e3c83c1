package main

import (
	"log"
	"os"

	"go-suministros-api/internal/model"
	"go-suministros-api/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator tool: reset a user's password from the command line.
// Usage: reset-password <username> <new-password>
func main() {
	if len(os.Args) != 3 {
		log.Fatal("Usage: reset-password <username> <new-password>")
	}
	username, newPassword := os.Args[1], os.Args[2]

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", username)
}
