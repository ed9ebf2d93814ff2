package db

import (
	"database/sql"
	"fmt"
)

// DefaultCrew is the set of employees seeded into a fresh database.
var DefaultCrew = []string{"Workshop Lead", "Detailer", "Valet Driver", "Front Desk"}

// SeedData populates the database with initial data
func SeedData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	for _, name := range DefaultCrew {
		_, err = tx.Exec("INSERT INTO employees (full_name) VALUES ($1) ON CONFLICT DO NOTHING", name)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding employees: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
