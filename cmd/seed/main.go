// seed inserts a verified test user and two documents with known text into
// the local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/infrastructure/postgres"
)

const (
	seedName  = "Seed User"
	seedEmail = "seed@test.local"
	seedPhone = "+10000000000"
)

var docs = []struct {
	name string
	text string
}{
	{
		name: "invoice-2024-03.pdf",
		text: "Invoice #1042\nIssued: 2024-03-01\nLine items: hosting, backups\nTotal: 42 USD\nDue in 30 days.",
	},
	{
		name: "meeting-notes.pdf",
		text: "Weekly sync notes.\nAttendees: four.\nDecision: ship the beta on Friday.\nAction items assigned to everyone present.",
	},
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(ctx, databaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	documents := postgres.NewDocumentRepository(pool)

	user, err := users.Create(ctx, seedName, seedEmail, seedPhone, true)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}
	fmt.Printf("user %s (%s)\n", user.ID, user.Email)

	for i, d := range docs {
		doc, err := documents.Create(ctx, &domain.Document{
			OwnerID:      user.ID,
			StoredName:   fmt.Sprintf("seed-%03d", i+1),
			OriginalName: d.name,
			Text:         d.text,
		})
		if err != nil {
			log.Fatalf("seed document %q: %v", d.name, err)
		}
		fmt.Printf("document %s (%s)\n", doc.ID, doc.OriginalName)
	}

	fmt.Println("seed complete")
}
