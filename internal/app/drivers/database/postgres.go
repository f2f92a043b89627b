package database

import (
	"fmt"
	"log"
	"time"

	"telehealth-service/internal/app/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func NewPostgresDB(driverConfig *config.DriverConfig) *sqlx.DB {
	connectionString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		driverConfig.Postgres.Host,
		driverConfig.Postgres.Port,
		driverConfig.Postgres.Username,
		driverConfig.Postgres.Password,
		driverConfig.Postgres.DbName,
		driverConfig.Postgres.SslMode,
	)

	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to postgres database: %s", err.Error())
	}

	db.SetMaxOpenConns(driverConfig.Postgres.MaxOpenConnections)
	db.SetMaxIdleConns(driverConfig.Postgres.MaxIdleConnections)
	db.SetConnMaxLifetime(time.Duration(driverConfig.Postgres.ConnMaxLifetimeInMinutes) * time.Minute)

	log.Println("Successfully connected to postgres database")

	return db
}
