package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"apibasics/internal/database"
	"apibasics/internal/repository"
)

// Deletes refresh tokens past their expiry. The API already deletes an
// expired token when someone tries to use it; this sweeper catches the
// ones nobody ever presents again. Run it from cron.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	refreshRepo := repository.NewRefreshTokenRepository(db)
	deleted, err := refreshRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("token cleanup completed: refresh_tokens=%d", deleted)
}
