package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tabernacle/internal/shared"
)

// CollectionRepository reads and writes raw collection documents.
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new CollectionRepository with the given database connection
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Get returns the stored document for key, or [shared.ErrCollectionNotFound] when the key was never written.
func (r *CollectionRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", shared.ErrCollectionNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return value, nil
}

// Put replaces the document stored for key.
func (r *CollectionRepository) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO collections (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *CollectionRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (r *CollectionRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM collections ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan collection key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Credential is a stored login.
type Credential struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// CredentialRepository stores password hashes for the password verifier.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new CredentialRepository with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Upsert creates or replaces the credential for c.Email.
func (r *CredentialRepository) Upsert(ctx context.Context, c Credential) error {
	email := NormalizeEmail(c.Email)
	if email == "" || c.PasswordHash == "" {
		return fmt.Errorf("%w: email and password hash are required", shared.ErrInvalidInput)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO credentials (email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, email, c.Name, c.PasswordHash, now, now); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// Get returns the credential for email, or [shared.ErrInvalidCredentials] when none exists.
func (r *CredentialRepository) Get(ctx context.Context, email string) (*Credential, error) {
	c := &Credential{}
	err := r.db.QueryRowContext(ctx,
		`SELECT email, name, password_hash, created_at FROM credentials WHERE email = ?`,
		NormalizeEmail(email),
	).Scan(&c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	return c, nil
}

// Delete removes the credential for email.
func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE email = ?`, NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("credential not found: %s", email)
	}
	return nil
}
