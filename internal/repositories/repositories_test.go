package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/tabernacle/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestCollectionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get missing key", func(t *testing.T) {
		repo := NewCollectionRepository(setupTestDB(t))

		_, err := repo.Get(ctx, "tabernacle_hero")
		if !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected ErrCollectionNotFound, got %v", err)
		}
	})

	t.Run("Put and Get", func(t *testing.T) {
		repo := NewCollectionRepository(setupTestDB(t))

		if err := repo.Put(ctx, "tabernacle_theme", `"light"`); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		got, err := repo.Get(ctx, "tabernacle_theme")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got != `"light"` {
			t.Errorf("expected \"light\", got %s", got)
		}
	})

	t.Run("Put overwrites", func(t *testing.T) {
		repo := NewCollectionRepository(setupTestDB(t))

		for _, v := range []string{"[]", `[{"id":"1"}]`} {
			if err := repo.Put(ctx, "tabernacle_photos", v); err != nil {
				t.Fatalf("failed to put: %v", err)
			}
		}

		got, _ := repo.Get(ctx, "tabernacle_photos")
		if got != `[{"id":"1"}]` {
			t.Errorf("expected last write to win, got %s", got)
		}
	})

	t.Run("Delete and Keys", func(t *testing.T) {
		repo := NewCollectionRepository(setupTestDB(t))

		_ = repo.Put(ctx, "b", "1")
		_ = repo.Put(ctx, "a", "2")

		keys, err := repo.Keys(ctx)
		if err != nil {
			t.Fatalf("failed to list keys: %v", err)
		}
		if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
			t.Errorf("expected [a b], got %v", keys)
		}

		if err := repo.Delete(ctx, "a"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if err := repo.Delete(ctx, "missing"); err != nil {
			t.Errorf("deleting a missing key should succeed, got %v", err)
		}

		keys, _ = repo.Keys(ctx)
		if len(keys) != 1 {
			t.Errorf("expected 1 key after delete, got %v", keys)
		}
	})
}

func TestCredentialRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert normalizes email", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		err := repo.Upsert(ctx, Credential{Email: "  Awa@Example.com ", Name: "Awa", PasswordHash: "hash"})
		if err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}

		c, err := repo.Get(ctx, "awa@example.com")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if c.Name != "Awa" || c.Email != "awa@example.com" {
			t.Errorf("unexpected credential %+v", c)
		}
	})

	t.Run("Upsert replaces hash", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		_ = repo.Upsert(ctx, Credential{Email: "a@b.c", PasswordHash: "one"})
		_ = repo.Upsert(ctx, Credential{Email: "a@b.c", PasswordHash: "two"})

		c, _ := repo.Get(ctx, "a@b.c")
		if c.PasswordHash != "two" {
			t.Errorf("expected replaced hash, got %s", c.PasswordHash)
		}
	})

	t.Run("Upsert requires fields", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		err := repo.Upsert(ctx, Credential{Email: "a@b.c"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get unknown", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if _, err := repo.Get(ctx, "nobody@b.c"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		_ = repo.Upsert(ctx, Credential{Email: "a@b.c", PasswordHash: "h"})
		if err := repo.Delete(ctx, "A@B.C"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if err := repo.Delete(ctx, "a@b.c"); err == nil {
			t.Error("expected error deleting twice")
		}
	})
}
