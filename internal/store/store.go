package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tabernacle/internal/shared"
)

// Storage keys. Values are JSON documents.
const (
	KeyTheme    = "tabernacle_theme"
	KeyAuth     = "tabernacle_auth"
	KeyProfile  = "tabernacle_profile"
	KeyHero     = "tabernacle_hero"
	KeyVideos   = "tabernacle_videos"
	KeyLive     = "tabernacle_live"
	KeyPhotos   = "tabernacle_photos"
	KeyQuiz     = "tabernacle_custom_quiz"
	KeyPodcasts = "tabernacle_podcasts"
)

// Keys lists every collection key in display order.
var Keys = []string{KeyTheme, KeyAuth, KeyProfile, KeyHero, KeyVideos, KeyLive, KeyPhotos, KeyQuiz, KeyPodcasts}

// IsKey reports whether key names a known collection.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Backend is a durable string key-value store.
//
// Get returns an error wrapping [shared.ErrCollectionNotFound] for a key that was never written.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Load decodes the document stored under key, falling back to def when it is absent, null or malformed.
//
// Failures are logged at debug level and never returned.
func Load[T any](ctx context.Context, b Backend, logger *log.Logger, key string, def T) T {
	raw, err := b.Get(ctx, key)
	if err != nil {
		if logger != nil && !errors.Is(err, shared.ErrCollectionNotFound) {
			logger.Debug("collection read failed, using default", "key", key, "error", err)
		}
		return def
	}
	if isNull(raw) {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		if logger != nil {
			logger.Debug("malformed collection, using default", "key", key, "error", err)
		}
		return def
	}
	return v
}

func isNull(raw string) bool { return strings.TrimSpace(raw) == "null" }

// Save encodes v and replaces the document stored under key.
func Save[T any](ctx context.Context, b Backend, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return b.Put(ctx, key, string(data))
}

// MemoryBackend is a process-local [Backend].
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrCollectionNotFound, key)
	}
	return v, nil
}

func (m *MemoryBackend) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
