package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// SQLiteStore backs users and watchlists with a local SQLite file for
// development without postgres. Passwords are stored as bcrypt hashes.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			login_name    TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_items (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			login_name TEXT NOT NULL,
			item_text  TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_items_login ON user_items(login_name)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users(login_name, password_hash, created_at) VALUES(?, ?, ?)
	`, username, string(hash), time.Now().Unix())
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return model.ErrUserExists
	}
	return storeErr("register user", err)
}

func (s *SQLiteStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT password_hash FROM users WHERE login_name = ?
	`, username).Scan(&hash)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, storeErr("validate user", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) List(ctx context.Context, username string) ([]model.WatchlistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, login_name, item_text, created_at
		FROM user_items
		WHERE login_name = ?
		ORDER BY id ASC
	`, username)
	if err != nil {
		return nil, storeErr("list watchlist", err)
	}
	defer rows.Close()

	var items []model.WatchlistItem
	for rows.Next() {
		var item model.WatchlistItem
		var createdAt int64
		if err := rows.Scan(&item.ID, &item.Owner, &item.Ticker, &createdAt); err != nil {
			return nil, storeErr("scan watchlist item", err)
		}
		item.CreatedAt = time.Unix(createdAt, 0).UTC()
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("list watchlist", err)
	}

	return items, nil
}

func (s *SQLiteStore) Add(ctx context.Context, username, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_items(login_name, item_text, created_at) VALUES(?, ?, ?)
	`, username, ticker, time.Now().Unix())
	return storeErr("add watchlist item", err)
}

func (s *SQLiteStore) Remove(ctx context.Context, username, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM user_items WHERE item_text = ? AND login_name = ?
	`, ticker, username)
	return storeErr("remove watchlist item", err)
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return storeErr("ping", s.db.PingContext(ctx))
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
