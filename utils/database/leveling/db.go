package leveling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTierNotFound        = errors.New("tier not found")
	ErrMultiplierNotFound  = errors.New("multiplier not found")
)

// The schema sticks to types and syntax shared by SQLite and Postgres.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS leveling_tiers (
		tier_id TEXT NOT NULL PRIMARY KEY,
		guild_id TEXT NOT NULL,
		level INTEGER NOT NULL,
		threshold BIGINT NOT NULL,
		role_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_leveling_tiers_guild_level ON leveling_tiers(guild_id, level)`,
	`CREATE TABLE IF NOT EXISTS leveling_participants (
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		xp BIGINT NOT NULL DEFAULT 0,
		tier_id TEXT,
		updated_at BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leveling_participants_xp ON leveling_participants(guild_id, xp)`,
	`CREATE TABLE IF NOT EXISTS leveling_multipliers (
		multiplier_id TEXT NOT NULL PRIMARY KEY,
		guild_id TEXT NOT NULL,
		name TEXT NOT NULL,
		factor DOUBLE PRECISION NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_leveling_multipliers_guild_name ON leveling_multipliers(guild_id, name)`,
}

// Init connects to the leveling database and ensures all tables exist.
// driver is "sqlite3" or "postgres".
func Init(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite3" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == "sqlite3" {
		// One writer at a time; also keeps an in-memory database on a single connection.
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return db, nil
}

// Store is the sqlx-backed leveling store.
type Store struct {
	db  *sqlx.DB
	now func() int64
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, now: unixNow}
}

// DB exposes the underlying handle for health and size reporting.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
