// Command import-catalog loads a CSV catalog file straight into the
// database, same reconciliation rules as the admin upload endpoint.
// Useful for the first load and for bulk supplier updates.
//
//	go run ./cmd/import-catalog precos.csv
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/importer"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/csvutil"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <arquivo.csv>\n", os.Args[0])
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read %s: %v", os.Args[1], err)
	}

	records := csvutil.Parse(string(raw))
	if len(records) == 0 {
		log.Fatal("No records found, check the file format")
	}

	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{})

	productRepo := repository.NewProductRepo(db)
	existing, err := productRepo.FindAll()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	merged := importer.Reconcile(existing, records, time.Now())

	err = db.Transaction(func(tx *gorm.DB) error {
		return productRepo.UpsertBatch(tx, merged)
	})
	if err != nil {
		log.Fatalf("Import failed, nothing was written: %v", err)
	}

	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.ID] = true
	}
	newCount := 0
	for _, p := range merged {
		if !known[p.ID] {
			newCount++
		}
	}
	log.Printf("Imported %d rows: %d products written (%d new, %d updated)", len(records), len(merged), newCount, len(merged)-newCount)
}
