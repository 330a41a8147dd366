// seed inserts a demo user and a handful of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/adilzhanb/taskhub/internal/auth"
	"github.com/adilzhanb/taskhub/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
)

const (
	seedEmail    = "demo@taskhub.local"
	seedName     = "Demo User"
	seedPassword = "demo-password"
)

type taskSpec struct {
	title       string
	description string
	status      string
}

var tasks = []taskSpec{
	{"Buy milk", "2% if they have it", "todo"},
	{"Write standup notes", "", "todo"},
	{"Review PR #42", "storage layer refactor", "in_progress"},
	{"Renew gym membership", "", "in_progress"},
	{"File expense report", "March receipts", "done"},
	{"Book dentist appointment", "", "done"},
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	// Re-running the seed replaces the demo tasks instead of duplicating them.
	if _, err := pool.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
		log.Fatalf("clear demo tasks: %v", err)
	}

	for _, t := range tasks {
		_, err := pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, description, status)
			VALUES ($1, $2, $3, $4)`,
			userID, t.title, t.description, t.status,
		)
		if err != nil {
			log.Fatalf("seed task %q: %v", t.title, err)
		}
	}

	fmt.Printf("seeded user %s (password %q) with %d tasks\n", seedEmail, seedPassword, len(tasks))
}
