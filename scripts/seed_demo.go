package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/devconnect-io/devconnect/pkg/auth"
)

// Seeds a demo account with a filled-in profile, for local development.
func main() {
	fmt.Println("seeding demo account...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("DEMO_EMAIL")
	password := os.Getenv("DEMO_PASSWORD")
	if email == "" {
		email = "demo@devconnect.local"
	}
	if password == "" {
		password = "demo123"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	userID := uuid.New()
	userQuery := `
		INSERT INTO users (id, name, email, avatar, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET password_hash = $5
		RETURNING id
	`
	err = pool.QueryRow(context.Background(), userQuery,
		userID, "Demo User", email, "", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	skills, _ := json.Marshal([]string{"Go", "PostgreSQL", "Kafka"})
	experience, _ := json.Marshal([]map[string]any{{
		"id":      uuid.New(),
		"title":   "Backend Engineer",
		"company": "Acme",
		"from":    "2021-03-01",
		"current": true,
	}})

	profileQuery := `
		INSERT INTO profiles (owner_id, status, skills, bio, social, experience, education, updated_at)
		VALUES ($1, $2, $3, $4, '{}', $5, '[]', $6)
		ON CONFLICT (owner_id) DO UPDATE SET
			status = EXCLUDED.status,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			experience = EXCLUDED.experience,
			updated_at = EXCLUDED.updated_at
	`
	_, err = pool.Exec(context.Background(), profileQuery,
		userID, "Backend Developer", skills, "Demo profile seeded for local development.",
		experience, time.Now().UTC())
	if err != nil {
		log.Fatalf("cannot add profile: %v", err)
	}

	fmt.Printf("seeded demo account '%s' successfully!\n", email)
}
