// Package store owns the persistence layer: the SQL database holding users
// and tasks, and the optional Redis task cache. It is the only shared mutable
// state in the process.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound indicates a requested record is missing or not owned by the
// caller. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail indicates the email is already registered (compared
// case-insensitively).
var ErrDuplicateEmail = errors.New("email already registered")

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'Incomplete',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS tasks_user_created ON tasks (user_id, created_at DESC);`

// InitDB opens the PostgreSQL database and ensures the schema exists.
func InitDB(source string) (*sql.DB, error) {
	db, err := sql.Open("postgres", source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}
	log.Println("Database connection successful and tables created.")
	return db, nil
}

// InitRedis connects to Redis at addr.
func InitRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	log.Println("Redis connection successful.")
	return rdb, nil
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// Both drivers are recognized: lib/pq serves production, go-sqlite3 serves
// the test suite against the same queries.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
