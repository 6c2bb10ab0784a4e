package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// MemoryDSN is the default data source: a named shared-cache in-memory
// database that lives as long as the Store is open.
const MemoryDSN = "file:quizdeck?mode=memory&cache=shared"

// Store holds the SQL driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies the pragmas and creates the journal tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database disappears with its last connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// OpenMemory opens the default in-memory store.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv}
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	b := entsql.Dialect(dialect.SQLite)
	stmts := []entsql.Querier{
		b.CreateTable(attemptEventsTable).IfNotExists().
			Columns(
				entsql.Column("id").Type("integer").Attr("PRIMARY KEY AUTOINCREMENT"),
				entsql.Column("timestamp").Type("integer").Attr("NOT NULL"),
				entsql.Column("session_id").Type("text").Attr("NOT NULL"),
				entsql.Column("action").Type("text").Attr("NOT NULL"),
				entsql.Column("mode").Type("text").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("question").Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("letters").Type("text").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("correct").Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("total").Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column("reason").Type("text").Attr("NOT NULL DEFAULT ''"),
				entsql.Column("remaining_secs").Type("integer").Attr("NOT NULL DEFAULT 0"),
			),
		b.CreateIndex("attempt_events_session_id").IfNotExists().
			Table(attemptEventsTable).
			Columns("session_id"),
	}
	for _, st := range stmts {
		query, args := st.Query()
		if err := drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("exec %q: %w", query, err)
		}
	}
	return nil
}
