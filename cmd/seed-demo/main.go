// seed-demo loads a fresh database with a starter employee roster and the
// standard stock items so a new install has something to show.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
//
// Refuses to run against a store that already has sales unless SEED_FORCE=true.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sudsworks/laundromat_backend/config"
	"github.com/sudsworks/laundromat_backend/models"
	"gorm.io/gorm/clause"
)

var seedEmployees = []models.Employee{
	{Name: "Maria Lopez", Position: "Attendant"},
	{Name: "Dan Whitfield", Position: "Attendant"},
	{Name: "Priya Natarajan", Position: "Manager"},
}

var seedItems = []models.InventoryItem{
	{Name: "Soap", CurrentStock: 24, MaxStock: 48, MinStock: 10, Unit: "bottles"},
	{Name: "Bleach", CurrentStock: 12, MaxStock: 24, MinStock: 4, Unit: "bottles"},
	{Name: "Dryer Sheets", CurrentStock: 30, MaxStock: 60, MinStock: 10, Unit: "boxes"},
	{Name: "Laundry Bags", CurrentStock: 100, MaxStock: 200, MinStock: 25, Unit: "bags"},
	{Name: "Quarters Roll", CurrentStock: 40, MaxStock: 80, MinStock: 15, Unit: "rolls"},
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SEED_FORCE")), "true") {
		var saleCount int64
		if err := db.WithContext(ctx).Model(&models.Sale{}).Count(&saleCount).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to check for existing sales: %v\n", err)
			os.Exit(1)
		}
		if saleCount > 0 {
			fmt.Fprintln(os.Stderr, "store already has sales; set SEED_FORCE=true to seed anyway")
			os.Exit(2)
		}
	}

	for i := range seedEmployees {
		emp := seedEmployees[i]
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&emp).Error
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed employee %s: %v\n", emp.Name, err)
			os.Exit(1)
		}
	}

	now := time.Now()
	for i := range seedItems {
		item := seedItems[i]
		item.LastUpdated = now
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&item).Error
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed item %s: %v\n", item.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %d employees and %d inventory items\n", len(seedEmployees), len(seedItems))
}
