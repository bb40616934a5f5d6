package test

import (
	"log"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"joiner/internal/adapter/database"
	"joiner/internal/adapter/database/sqlite"
	"joiner/internal/core/util"
)

// InitTestDB returns a migrated in-memory sqlite database.
func InitTestDB() *database.DB {
	util.HashCost = bcrypt.MinCost

	db, err := sqlite.NewDB(sqlite.InMemory, database.Options{Name: "joiner_test"})
	if err != nil {
		log.Fatal(err)
	}

	return db
}

// CleanDB empties every table, children first.
func CleanDB(t *testing.T, db *database.DB) {
	t.Helper()

	for _, table := range []string{"members", "identities"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}
