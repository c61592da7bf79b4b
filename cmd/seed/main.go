// seed inserts a verified test user and a few saved translations into
// the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tarjamli/backend/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "secret1"
)

var translations = [][2]string{
	{"Hello, how are you?", "Salam, labas?"},
	{"Thank you very much", "Choukran bezzaf"},
	{"Where is the train station?", "Fin kayna la gare?"},
	{"I would like a mint tea", "Bghit atay b n3na3"},
	{"See you tomorrow", "Nchoufouk ghedda"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert verified test user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, verified)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET password_hash = $2, updated_at = NOW()
		RETURNING id`,
		seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, tr := range translations {
		if _, err := pool.Exec(ctx, `
			INSERT INTO translations (user_id, source_text, translated_text)
			VALUES ($1, $2, $3)`,
			userID, tr[0], tr[1],
		); err != nil {
			log.Fatalf("insert translation: %v", err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:         %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:      %s\n", userID)
	fmt.Printf("  Translations: %d\n", inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"token\":\"eyJ...\", ...}")
	fmt.Println()
	fmt.Println("  Step 2 — fetch the account and history:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/auth/user -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/translations -H \"Authorization: Bearer $JWT\"")
}
