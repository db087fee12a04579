package models

import (
	"log"

	"github.com/sudsworks/laundromat_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Sale{},
		&Employee{}, &Timesheet{},
		&InventoryItem{}, &InventoryLog{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
