package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/repositories"
	"github.com/desertthunder/tabernacle/internal/shared"
)

func sqliteBackend(t *testing.T) Backend {
	t.Helper()

	db, err := shared.OpenStore(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repositories.NewCollectionRepository(db)
}

func backends(t *testing.T) map[string]Backend {
	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"sqlite": sqliteBackend(t),
	}
}

func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := LoadState(ctx, b, nil)

			if s.Theme != models.ThemeDark {
				t.Errorf("expected dark theme, got %s", s.Theme)
			}
			if s.Authenticated {
				t.Error("expected unauthenticated default")
			}
			if s.Profile != nil {
				t.Error("expected nil profile default")
			}
			if !reflect.DeepEqual(s.Hero, models.DefaultHeroSlides()) {
				t.Error("hero slides differ from default")
			}
			if !reflect.DeepEqual(s.Videos, models.DefaultVideos()) {
				t.Error("videos differ from default")
			}
			if s.Live != models.DefaultLiveVideo() {
				t.Error("live pointer differs from default")
			}
			if !reflect.DeepEqual(s.Photos, models.DefaultPhotos()) {
				t.Error("photos differ from default")
			}
			if !reflect.DeepEqual(s.Quiz, models.DefaultQuizQuestions()) {
				t.Error("quiz differs from default")
			}
			if !reflect.DeepEqual(s.Podcasts, models.DefaultPodcasts()) {
				t.Error("podcasts differ from default")
			}

			keys, _ := b.Keys(ctx)
			if len(keys) != 0 {
				t.Errorf("defaults must not be written back, found %v", keys)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := LoadState(ctx, b, nil)

			profile := &models.UserProfile{Name: "Awa", Email: "awa@example.com", Preferences: models.Preferences{FontSize: models.FontNormal}}
			hero := []models.HeroSlide{{Title: "Un", Subtitle: "Deux"}}
			videos := []models.Video{{ID: "abc", Title: "Culte"}}
			live := models.Video{ID: "xyz", Title: "Direct", IsLive: true}
			photos := []models.PhotoItem{{ID: "9", URL: "u", Event: "e"}}
			quiz := []models.QuizQuestion{models.NewQuizQuestion()}
			podcasts := models.DefaultPodcasts()[:1]

			steps := []error{
				s.SetTheme(ctx, models.ThemeLight),
				s.SetAuthenticated(ctx, true),
				s.SetProfile(ctx, profile),
				s.SetHero(ctx, hero),
				s.SetVideos(ctx, videos),
				s.SetLive(ctx, live),
				s.SetPhotos(ctx, photos),
				s.SetQuiz(ctx, quiz),
				s.SetPodcasts(ctx, podcasts),
			}
			for i, err := range steps {
				if err != nil {
					t.Fatalf("setter %d failed: %v", i, err)
				}
			}

			r := LoadState(ctx, b, nil)
			if r.Theme != models.ThemeLight || !r.Authenticated {
				t.Errorf("flags not persisted: theme=%s auth=%v", r.Theme, r.Authenticated)
			}
			if !reflect.DeepEqual(r.Profile, profile) {
				t.Errorf("profile = %+v, want %+v", r.Profile, profile)
			}
			if !reflect.DeepEqual(r.Hero, hero) || !reflect.DeepEqual(r.Videos, videos) || r.Live != live {
				t.Error("media collections not persisted")
			}
			if !reflect.DeepEqual(r.Photos, photos) || !reflect.DeepEqual(r.Quiz, quiz) || !reflect.DeepEqual(r.Podcasts, podcasts) {
				t.Error("content collections not persisted")
			}
		})
	}
}

func TestMalformedPayloads(t *testing.T) {
	ctx := context.Background()

	tc := []struct {
		name string
		key  string
		raw  string
	}{
		{name: "truncated array", key: KeyHero, raw: `[{"title":`},
		{name: "wrong type", key: KeyVideos, raw: `{"id":"x"}`},
		{name: "not json", key: KeyTheme, raw: `dark`},
		{name: "number for bool", key: KeyAuth, raw: `"yes"`},
		{name: "empty", key: KeyPodcasts, raw: ``},
		{name: "null slice", key: KeyHero, raw: `null`},
		{name: "null live", key: KeyLive, raw: ` null `},
		{name: "null theme", key: KeyTheme, raw: `null`},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			b := NewMemoryBackend()
			_ = b.Put(ctx, tt.key, tt.raw)

			s := LoadState(ctx, b, nil)
			def := LoadState(ctx, NewMemoryBackend(), nil)

			got, _ := s.Raw(tt.key)
			want, _ := def.Raw(tt.key)
			if got != want {
				t.Errorf("malformed %s should load default\n got: %s\nwant: %s", tt.key, got, want)
			}

			stored, _ := b.Get(ctx, tt.key)
			if stored != tt.raw {
				t.Error("malformed value must not be overwritten by a load")
			}
		})
	}
}

func TestCaptionsAreSessionLocal(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s := LoadState(ctx, b, nil)

	if !s.SetCaption("1", "Lumière") {
		t.Fatal("expected photo 1 to exist")
	}
	if s.SetCaption("missing", "x") {
		t.Error("unknown photo should report false")
	}
	if err := s.SetPhotos(ctx, s.Photos); err != nil {
		t.Fatalf("failed to save photos: %v", err)
	}

	r := LoadState(ctx, b, nil)
	if r.Photos[0].AICaption != "" {
		t.Error("caption must not survive a reload")
	}
	if n := s.ClearCaptions(); n != 1 {
		t.Errorf("expected 1 cleared caption, got %d", n)
	}
}

func TestSetRaw(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		s := LoadState(ctx, NewMemoryBackend(), nil)
		if err := s.SetRaw(ctx, KeyTheme, `"light"`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Theme != models.ThemeLight {
			t.Errorf("expected light theme, got %s", s.Theme)
		}
	})

	t.Run("invalid question rejected before write", func(t *testing.T) {
		b := NewMemoryBackend()
		s := LoadState(ctx, b, nil)
		err := s.SetRaw(ctx, KeyQuiz, `[{"question":"q","options":["a","b"],"correctAnswer":0}]`)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := b.Get(ctx, KeyQuiz); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Error("nothing should be stored after a rejected edit")
		}
	})

	t.Run("null only for the profile", func(t *testing.T) {
		b := NewMemoryBackend()
		s := LoadState(ctx, b, nil)
		if err := s.SetRaw(ctx, KeyLive, `null`); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if s.Live != models.DefaultLiveVideo() {
			t.Error("live video should be unchanged")
		}

		_ = s.SetProfile(ctx, &models.UserProfile{Name: "Awa"})
		if err := s.SetRaw(ctx, KeyProfile, `null`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Profile != nil || LoadState(ctx, b, nil).Profile != nil {
			t.Error("profile should be cleared")
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		s := LoadState(ctx, NewMemoryBackend(), nil)
		if err := s.SetRaw(ctx, "tabernacle_nope", "1"); !errors.Is(err, shared.ErrUnknownCollection) {
			t.Errorf("expected ErrUnknownCollection, got %v", err)
		}
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s := LoadState(ctx, b, nil)

	_ = s.SetHero(ctx, nil)
	if err := s.Reset(ctx, KeyHero); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(s.Hero) != len(models.DefaultHeroSlides()) {
		t.Errorf("expected default hero slides after reset, got %d", len(s.Hero))
	}
	if err := s.Reset(ctx, "bogus"); !errors.Is(err, shared.ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}

type failingBackend struct {
	*MemoryBackend
	err error
}

func (f *failingBackend) Put(context.Context, string, string) error { return f.err }

func TestFailedWriteKeepsMemory(t *testing.T) {
	ctx := context.Background()
	diskFull := errors.New("disk full")
	b := &failingBackend{MemoryBackend: NewMemoryBackend(), err: diskFull}
	s := LoadState(ctx, b, nil)
	before := LoadState(ctx, NewMemoryBackend(), nil)

	steps := map[string]error{
		"theme":    s.SetTheme(ctx, models.ThemeLight),
		"auth":     s.SetAuthenticated(ctx, true),
		"profile":  s.SetProfile(ctx, &models.UserProfile{Name: "Awa"}),
		"hero":     s.SetHero(ctx, nil),
		"videos":   s.SetVideos(ctx, nil),
		"live":     s.SetLive(ctx, models.Video{ID: "x"}),
		"photos":   s.SetPhotos(ctx, nil),
		"quiz":     s.SetQuiz(ctx, nil),
		"podcasts": s.SetPodcasts(ctx, nil),
	}
	for name, err := range steps {
		if !errors.Is(err, diskFull) {
			t.Errorf("%s: expected disk full, got %v", name, err)
		}
	}

	for _, key := range Keys {
		got, _ := s.Raw(key)
		want, _ := before.Raw(key)
		if got != want {
			t.Errorf("%s changed in memory after a failed write\n got: %s\nwant: %s", key, got, want)
		}
	}
}
