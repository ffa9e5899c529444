package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/folioworks/folioworks/internal/content"
	"github.com/folioworks/folioworks/internal/content/repository"
	"github.com/folioworks/folioworks/internal/database"
)

// Seeds each registered section's default document into the content store.
// Existing documents are left alone unless -force is given.
func main() {
	force := flag.Bool("force", false, "overwrite sections that already have a document")
	flag.Parse()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "folioworks"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, uri, 10*time.Second)
	if err != nil {
		log.Fatalf("cannot connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	store := repository.NewMongoStore(client.Database(dbName))
	for _, sec := range content.Sections() {
		if !*force {
			if _, err := store.Get(ctx, content.Collection, sec.Key); err == nil {
				log.Printf("section %q already present, skipping", sec.Key)
				continue
			}
		}
		if err := store.Set(ctx, content.Collection, sec.Key, sec.DefaultDraft()); err != nil {
			log.Fatalf("seed %q failed: %v", sec.Key, err)
		}
		log.Printf("seeded section %q", sec.Key)
	}
}
