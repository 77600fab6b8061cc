// Package database provides SQLite persistence for account records and
// their refresh-token state.
package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) *SQLiteStore {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v\n", err)
	}

	// one pooled connection: sqlite permits a single writer anyway, and
	// this keeps ':memory:' databases shared across queries
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		log.Fatalf("failed to init database: %v\n", err)
	}

	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	if err := initTable(db, "account", `
		CREATE TABLE IF NOT EXISTS account (
			id                  TEXT PRIMARY KEY,
			email               TEXT NOT NULL UNIQUE,
			name                TEXT,
			secret              BLOB NOT NULL,
			role                TEXT NOT NULL,
			refresh_token       TEXT,
			refresh_expiration  INTEGER
		);`,
	); err != nil {
		return err
	}

	return nil
}

func initTable(
	db *sql.DB,
	name string,
	sql string,
) error {
	if _, err := db.Exec(sql); err != nil {
		return fmt.Errorf("failed to init '%s' table schema: %v", name, err)
	}
	return nil
}
