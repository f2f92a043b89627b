package main

import (
	"flag"
	"log"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/drivers/database"
	"telehealth-service/internal/migration"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back migrations instead of applying them")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	n, err := migration.Run(db.DB, direction)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied %d migrations!\n", n)
}
