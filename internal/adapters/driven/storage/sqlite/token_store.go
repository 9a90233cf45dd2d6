// Package sqlite persists OAuth tokens in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

const schema = `
CREATE TABLE IF NOT EXISTS tokens (
	token_key     TEXT PRIMARY KEY,
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL DEFAULT '',
	token_type    TEXT NOT NULL DEFAULT '',
	expiry        INTEGER NOT NULL DEFAULT 0,
	updated_at    INTEGER NOT NULL
);
`

// TokenStore implements driven.TokenStore on SQLite.
type TokenStore struct {
	db *sql.DB
}

var _ driven.TokenStore = (*TokenStore)(nil)

// NewTokenStore opens (and creates if needed) the database at path.
// The special path ":memory:" keeps tokens for the life of the process.
func NewTokenStore(path string) (*TokenStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create token directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &TokenStore{db: db}, nil
}

// Get returns the token stored under key or domain.ErrNotFound.
func (s *TokenStore) Get(ctx context.Context, key domain.TokenKey) (*domain.OAuthToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, token_type, expiry FROM tokens WHERE token_key = ?`,
		key.String())

	var (
		token  domain.OAuthToken
		expiry int64
	)
	if err := row.Scan(&token.AccessToken, &token.RefreshToken, &token.TokenType, &expiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	if expiry != 0 {
		token.Expiry = time.Unix(expiry, 0)
	}
	return &token, nil
}

// Save stores token under key, replacing any previous token.
func (s *TokenStore) Save(ctx context.Context, key domain.TokenKey, token *domain.OAuthToken) error {
	if token == nil {
		return fmt.Errorf("save token: %w", domain.ErrInvalidInput)
	}

	var expiry int64
	if !token.Expiry.IsZero() {
		expiry = token.Expiry.Unix()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tokens (token_key, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(token_key) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at`,
		key.String(), token.AccessToken, token.RefreshToken, token.TokenType, expiry, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Delete removes the token stored under key. Deleting a missing token is not an error.
func (s *TokenStore) Delete(ctx context.Context, key domain.TokenKey) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE token_key = ?`, key.String()); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *TokenStore) Close() error {
	return s.db.Close()
}
