package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/sharelist/sharelist-api/config"
	"github.com/sharelist/sharelist-api/pkg/helpers"
)

// Seeds the database with demo users, lists and items. Destructive: wipes
// existing rows first.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	log.Println("clearing existing data...")
	for _, stmt := range []string{
		`DELETE FROM items`,
		`DELETE FROM list_members`,
		`DELETE FROM lists`,
		`DELETE FROM users`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("failed to clear: %v", err)
		}
	}

	hash, err := helpers.HashPassword("password")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	emails := []string{"user1@example.com", "user2@example.com", "user3@example.com"}
	userIDs := make([]int64, len(emails))
	for i, email := range emails {
		if err := db.QueryRow(`
			INSERT INTO users (email, password_hash)
			VALUES ($1, $2)
			RETURNING id
		`, email, hash).Scan(&userIDs[i]); err != nil {
			log.Fatalf("failed to seed user %s: %v", email, err)
		}
	}

	titles := []string{"Bodybuilding Routine", "Programming Tasks", "Programming Books to Read"}
	listIDs := make([]int64, len(titles))
	for i, title := range titles {
		if err := db.QueryRow(`
			INSERT INTO lists (title, created_by)
			VALUES ($1, $2)
			RETURNING id
		`, title, userIDs[i]).Scan(&listIDs[i]); err != nil {
			log.Fatalf("failed to seed list %q: %v", title, err)
		}
		if _, err := db.Exec(`
			INSERT INTO list_members (list_id, user_id)
			VALUES ($1, $2)
		`, listIDs[i], userIDs[i]); err != nil {
			log.Fatalf("failed to seed membership: %v", err)
		}
	}

	// Share the programming list with the third user
	if _, err := db.Exec(`
		INSERT INTO list_members (list_id, user_id)
		VALUES ($1, $2)
	`, listIDs[1], userIDs[2]); err != nil {
		log.Fatalf("failed to seed share: %v", err)
	}

	deadline := time.Now().AddDate(0, 1, 0)
	items := []struct {
		title, description string
		status             string
		list               int
		creator            int
	}{
		{"Leg day", "Squats, lunges and calf raises", "active", 0, 0},
		{"Fix flaky CI job", "Timeouts on the integration stage", "active", 1, 1},
		{"Review pull requests", "", "completed", 1, 2},
		{"The Pragmatic Programmer", "Re-read the estimation chapter", "active", 2, 2},
	}
	for _, it := range items {
		if _, err := db.Exec(`
			INSERT INTO items (title, description, deadline, status, list_id, created_by)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		`, it.title, it.description, deadline, it.status, listIDs[it.list], userIDs[it.creator]); err != nil {
			log.Fatalf("failed to seed item %q: %v", it.title, err)
		}
	}

	fmt.Printf("seeded %d users, %d lists, %d items (password for all users: password)\n",
		len(emails), len(titles), len(items))
}
