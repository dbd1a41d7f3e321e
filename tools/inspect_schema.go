package main

import (
	"fmt"
	"log"

	"github.com/cardkeep/cardkeep-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	err = db.AutoMigrate(
		&models.Profile{},
		&models.CardDefinition{},
		&models.UserCard{},
		&models.Deck{},
		&models.DeckCard{},
	)
	if err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)
	for _, table := range tables {
		fmt.Println(table)
		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&ddl)
		fmt.Println(ddl)
		fmt.Println()
	}
}
