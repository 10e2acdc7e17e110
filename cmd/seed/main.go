package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"apibasics/internal/database"
	"apibasics/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "apibasics.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM todos")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	prefs, _ := json.Marshal(map[string]any{"theme": "dark", "notifications": true})
	demoHash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	demo := domain.User{
		ID:           uuid.NewString(),
		Email:        "demo@example.com",
		PasswordHash: string(demoHash),
		Name:         "Demo User",
		Bio:          "Just here to try the API.",
		Preferences:  string(prefs),
	}
	db.Create(&demo)
	log.Println("Demo user created: demo@example.com / password123")

	log.Println("Creating todos...")
	titles := []string{"Read the docs", "Write a Terraform config", "Revoke old tokens"}
	for i, title := range titles {
		todo := domain.Todo{
			ID:          uuid.NewString(),
			UserID:      demo.ID,
			Title:       title,
			Description: fmt.Sprintf("Seeded todo #%d", i+1),
			Completed:   i == 0,
		}
		db.Create(&todo)
	}

	log.Println("Seed completed.")
}
