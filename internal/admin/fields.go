package admin

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tabernacle/internal/shared"
)

// Entity names an editable collection.
type Entity string

const (
	EntityHero    Entity = "hero"
	EntityVideo   Entity = "video"
	EntityLive    Entity = "live"
	EntityPhoto   Entity = "photo"
	EntityQuiz    Entity = "quiz"
	EntityPodcast Entity = "podcast"
)

// HeroField is an editable field of a hero slide.
type HeroField string

const (
	HeroImage    HeroField = "image"
	HeroTitle    HeroField = "title"
	HeroSubtitle HeroField = "subtitle"
)

// VideoField is an editable field of an archive video or the live pointer.
type VideoField string

const (
	VideoID    VideoField = "id"
	VideoTitle VideoField = "title"
	VideoDate  VideoField = "date"
	VideoViews VideoField = "views"
	VideoImg   VideoField = "img"
)

// PhotoField is an editable field of a gallery photo.
type PhotoField string

const (
	PhotoURL         PhotoField = "url"
	PhotoEvent       PhotoField = "event"
	PhotoDescription PhotoField = "description"
)

// QuizField is an editable text field of a curated question.
type QuizField string

const (
	QuizText        QuizField = "question"
	QuizExplanation QuizField = "explanation"
)

func parseField[F ~string](entity Entity, s string, allowed ...F) (F, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s has no field %q", shared.ErrUnknownField, entity, s)
}

func ParseHeroField(s string) (HeroField, error) {
	return parseField(EntityHero, s, HeroImage, HeroTitle, HeroSubtitle)
}

func ParseVideoField(s string) (VideoField, error) {
	return parseField(EntityVideo, s, VideoID, VideoTitle, VideoDate, VideoViews, VideoImg)
}

func ParsePhotoField(s string) (PhotoField, error) {
	return parseField(EntityPhoto, s, PhotoURL, PhotoEvent, PhotoDescription)
}

func ParseQuizField(s string) (QuizField, error) {
	return parseField(EntityQuiz, s, QuizText, QuizExplanation)
}

func checkIndex(entity Entity, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s index %d (have %d)", shared.ErrOutOfRange, entity, i, n)
	}
	return nil
}
