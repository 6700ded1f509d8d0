// Package repository implements the PostgreSQL storage for users, the
// fund catalog and the transaction ledger. Balance mutations run as a
// single SQL transaction with a conditional update, so a subscribe or
// cancel either commits the debit/credit, the membership change and the
// ledger record together or not at all.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Register the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage encapsulates the PostgreSQL connection.
type Storage struct {
	DB *sql.DB
}

// New opens a PostgreSQL connection and pings it.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies the schema has been migrated.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'fondos'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table fondos missing or query error: %w", err)
	}
	return nil
}
