package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// State is the in-memory copy of every collection.
//
// Fields are read directly; writes go through the setters so storage stays in step.
// State is not safe for concurrent mutation: the UI loop or the CLI runner is its only writer.
type State struct {
	Theme         models.Theme
	Authenticated bool
	Profile       *models.UserProfile
	Hero          []models.HeroSlide
	Videos        []models.Video
	Live          models.Video
	Photos        []models.PhotoItem
	Quiz          []models.QuizQuestion
	Podcasts      []models.PodcastEpisode

	backend Backend
	logger  *log.Logger
}

// LoadState reads every collection from b, substituting defaults.
func LoadState(ctx context.Context, b Backend, logger *log.Logger) *State {
	s := &State{backend: b, logger: logger}
	s.load(ctx)
	return s
}

func (s *State) load(ctx context.Context) {
	b, l := s.backend, s.logger
	s.Theme = Load(ctx, b, l, KeyTheme, models.ThemeDark)
	s.Authenticated = Load(ctx, b, l, KeyAuth, false)
	s.Profile = Load[*models.UserProfile](ctx, b, l, KeyProfile, nil)
	s.Hero = Load(ctx, b, l, KeyHero, models.DefaultHeroSlides())
	s.Videos = Load(ctx, b, l, KeyVideos, models.DefaultVideos())
	s.Live = Load(ctx, b, l, KeyLive, models.DefaultLiveVideo())
	s.Photos = Load(ctx, b, l, KeyPhotos, models.DefaultPhotos())
	s.Quiz = Load(ctx, b, l, KeyQuiz, models.DefaultQuizQuestions())
	s.Podcasts = Load(ctx, b, l, KeyPodcasts, models.DefaultPodcasts())
}

// Reload discards in-memory values and reads storage again.
func (s *State) Reload(ctx context.Context) { s.load(ctx) }

// Backend returns the storage the state writes through to.
func (s *State) Backend() Backend { return s.backend }

// commit stores v under key, then assigns it to *dst. A failed write leaves *dst unchanged.
func commit[T any](ctx context.Context, b Backend, key string, v T, dst *T) error {
	if err := Save(ctx, b, key, v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func (s *State) SetTheme(ctx context.Context, t models.Theme) error {
	return commit(ctx, s.backend, KeyTheme, t, &s.Theme)
}

func (s *State) SetAuthenticated(ctx context.Context, v bool) error {
	return commit(ctx, s.backend, KeyAuth, v, &s.Authenticated)
}

func (s *State) SetProfile(ctx context.Context, p *models.UserProfile) error {
	return commit(ctx, s.backend, KeyProfile, p, &s.Profile)
}

func (s *State) SetHero(ctx context.Context, v []models.HeroSlide) error {
	return commit(ctx, s.backend, KeyHero, v, &s.Hero)
}

func (s *State) SetVideos(ctx context.Context, v []models.Video) error {
	return commit(ctx, s.backend, KeyVideos, v, &s.Videos)
}

func (s *State) SetLive(ctx context.Context, v models.Video) error {
	return commit(ctx, s.backend, KeyLive, v, &s.Live)
}

func (s *State) SetPhotos(ctx context.Context, v []models.PhotoItem) error {
	return commit(ctx, s.backend, KeyPhotos, v, &s.Photos)
}

func (s *State) SetQuiz(ctx context.Context, v []models.QuizQuestion) error {
	return commit(ctx, s.backend, KeyQuiz, v, &s.Quiz)
}

func (s *State) SetPodcasts(ctx context.Context, v []models.PodcastEpisode) error {
	return commit(ctx, s.backend, KeyPodcasts, v, &s.Podcasts)
}

// SetCaption attaches a session-local caption to the photo with id. Captions are not persisted.
func (s *State) SetCaption(id, caption string) bool {
	for i := range s.Photos {
		if s.Photos[i].ID == id {
			s.Photos[i].AICaption = caption
			return true
		}
	}
	return false
}

// ClearCaptions drops every session-local caption and returns how many were removed.
func (s *State) ClearCaptions() int {
	n := 0
	for i := range s.Photos {
		if s.Photos[i].AICaption != "" {
			s.Photos[i].AICaption = ""
			n++
		}
	}
	return n
}

// Raw returns the JSON document of the in-memory value for key.
func (s *State) Raw(key string) (string, error) {
	var v any
	switch key {
	case KeyTheme:
		v = s.Theme
	case KeyAuth:
		v = s.Authenticated
	case KeyProfile:
		v = s.Profile
	case KeyHero:
		v = s.Hero
	case KeyVideos:
		v = s.Videos
	case KeyLive:
		v = s.Live
	case KeyPhotos:
		v = s.Photos
	case KeyQuiz:
		v = s.Quiz
	case KeyPodcasts:
		v = s.Podcasts
	default:
		return "", fmt.Errorf("%w: %s", shared.ErrUnknownCollection, key)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return string(data), nil
}

// SetRaw decodes raw into the type held under key and writes it through.
//
// Decoding errors are returned before anything is stored. Only the profile may be set to null.
func (s *State) SetRaw(ctx context.Context, key, raw string) error {
	if key != KeyProfile && IsKey(key) && isNull(raw) {
		return fmt.Errorf("%w: %s cannot be null", shared.ErrInvalidInput, key)
	}
	data := []byte(raw)
	switch key {
	case KeyTheme:
		var v models.Theme
		if err := decode(data, &v); err != nil {
			return err
		}
		if v != models.ThemeDark && v != models.ThemeLight {
			return fmt.Errorf("%w: unknown theme %q", shared.ErrInvalidInput, v)
		}
		return s.SetTheme(ctx, v)
	case KeyAuth:
		var v bool
		if err := decode(data, &v); err != nil {
			return err
		}
		return s.SetAuthenticated(ctx, v)
	case KeyProfile:
		var v *models.UserProfile
		if err := decode(data, &v); err != nil {
			return err
		}
		if v != nil {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
			}
		}
		return s.SetProfile(ctx, v)
	case KeyHero:
		var v []models.HeroSlide
		if err := decode(data, &v); err != nil {
			return err
		}
		return s.SetHero(ctx, v)
	case KeyVideos:
		var v []models.Video
		if err := decode(data, &v); err != nil {
			return err
		}
		return s.SetVideos(ctx, v)
	case KeyLive:
		var v models.Video
		if err := decode(data, &v); err != nil {
			return err
		}
		return s.SetLive(ctx, v)
	case KeyPhotos:
		var v []models.PhotoItem
		if err := decode(data, &v); err != nil {
			return err
		}
		return s.SetPhotos(ctx, v)
	case KeyQuiz:
		var v []models.QuizQuestion
		if err := decode(data, &v); err != nil {
			return err
		}
		for i, q := range v {
			if err := q.Validate(); err != nil {
				return fmt.Errorf("%w: question %d: %v", shared.ErrInvalidInput, i, err)
			}
		}
		return s.SetQuiz(ctx, v)
	case KeyPodcasts:
		var v []models.PodcastEpisode
		if err := decode(data, &v); err != nil {
			return err
		}
		for _, e := range v {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("%w: episode %s: %v", shared.ErrInvalidInput, e.ID, err)
			}
		}
		return s.SetPodcasts(ctx, v)
	}
	return fmt.Errorf("%w: %s", shared.ErrUnknownCollection, key)
}

// Reset deletes the stored document for key so the default applies again, then reloads.
func (s *State) Reset(ctx context.Context, key string) error {
	if !IsKey(key) {
		return fmt.Errorf("%w: %s", shared.ErrUnknownCollection, key)
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		return err
	}
	s.load(ctx)
	return nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}
