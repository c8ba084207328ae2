package admin

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Command is one validated edit of a single collection.
type Command interface {
	Entity() Entity
	// Describe is a short French summary shown after the edit lands.
	Describe() string
	apply(ctx context.Context, p *Panel) error
}

// AddHero appends the template slide.
type AddHero struct{}

// UpdateHero sets one field of the slide at Index.
type UpdateHero struct {
	Index int
	Field HeroField
	Value string
}

// DeleteHero removes the slide at Index.
type DeleteHero struct{ Index int }

// AddVideo prepends a video to the archive. A zero Video uses the template.
type AddVideo struct{ Video models.Video }

// UpdateVideo sets one field of the archive video at Index.
type UpdateVideo struct {
	Index int
	Field VideoField
	Value string
}

// DeleteVideo removes the archive video at Index.
type DeleteVideo struct{ Index int }

// UpdateLive sets one field of the live stream pointer.
type UpdateLive struct {
	Field VideoField
	Value string
}

// AddPhoto prepends the template photo under a fresh id.
type AddPhoto struct{}

// UpdatePhoto sets one field of the photo at Index.
type UpdatePhoto struct {
	Index int
	Field PhotoField
	Value string
}

// DeletePhoto removes the photo at Index.
type DeletePhoto struct{ Index int }

// AddQuiz prepends the template question.
type AddQuiz struct{}

// UpdateQuiz sets the question text or explanation at Index.
type UpdateQuiz struct {
	Index int
	Field QuizField
	Value string
}

// SetQuizOption replaces option Option of the question at Index.
type SetQuizOption struct {
	Index  int
	Option int
	Value  string
}

// SetQuizAnswer marks option Answer as correct for the question at Index.
type SetQuizAnswer struct {
	Index  int
	Answer int
}

// DeleteQuiz removes the question at Index.
type DeleteQuiz struct{ Index int }

// AddPodcast prepends an uploaded episode. Id and type are filled in when empty.
type AddPodcast struct{ Episode models.PodcastEpisode }

// DeletePodcast removes the episode with ID.
type DeletePodcast struct{ ID string }

// UploadImage stores a local image file as a data URL on a hero slide or photo.
type UploadImage struct {
	Target Entity // EntityHero or EntityPhoto
	Index  int
	Path   string
}

func (AddHero) Entity() Entity       { return EntityHero }
func (UpdateHero) Entity() Entity    { return EntityHero }
func (DeleteHero) Entity() Entity    { return EntityHero }
func (AddVideo) Entity() Entity      { return EntityVideo }
func (UpdateVideo) Entity() Entity   { return EntityVideo }
func (DeleteVideo) Entity() Entity   { return EntityVideo }
func (UpdateLive) Entity() Entity    { return EntityLive }
func (AddPhoto) Entity() Entity      { return EntityPhoto }
func (UpdatePhoto) Entity() Entity   { return EntityPhoto }
func (DeletePhoto) Entity() Entity   { return EntityPhoto }
func (AddQuiz) Entity() Entity       { return EntityQuiz }
func (UpdateQuiz) Entity() Entity    { return EntityQuiz }
func (SetQuizOption) Entity() Entity { return EntityQuiz }
func (SetQuizAnswer) Entity() Entity { return EntityQuiz }
func (DeleteQuiz) Entity() Entity    { return EntityQuiz }
func (AddPodcast) Entity() Entity    { return EntityPodcast }
func (DeletePodcast) Entity() Entity { return EntityPodcast }
func (c UploadImage) Entity() Entity { return c.Target }

func (AddHero) Describe() string         { return "Diapositive ajoutée" }
func (c UpdateHero) Describe() string    { return fmt.Sprintf("Diapositive %d : %s modifié", c.Index+1, c.Field) }
func (c DeleteHero) Describe() string    { return fmt.Sprintf("Diapositive %d supprimée", c.Index+1) }
func (AddVideo) Describe() string        { return "Vidéo ajoutée" }
func (c UpdateVideo) Describe() string   { return fmt.Sprintf("Vidéo %d : %s modifié", c.Index+1, c.Field) }
func (c DeleteVideo) Describe() string   { return fmt.Sprintf("Vidéo %d supprimée", c.Index+1) }
func (c UpdateLive) Describe() string    { return fmt.Sprintf("Direct : %s modifié", c.Field) }
func (AddPhoto) Describe() string        { return "Photo ajoutée" }
func (c UpdatePhoto) Describe() string   { return fmt.Sprintf("Photo %d : %s modifié", c.Index+1, c.Field) }
func (c DeletePhoto) Describe() string   { return fmt.Sprintf("Photo %d supprimée", c.Index+1) }
func (AddQuiz) Describe() string         { return "Question ajoutée" }
func (c UpdateQuiz) Describe() string    { return fmt.Sprintf("Question %d : %s modifié", c.Index+1, c.Field) }
func (c SetQuizOption) Describe() string { return fmt.Sprintf("Question %d : option %d modifiée", c.Index+1, c.Option+1) }
func (c SetQuizAnswer) Describe() string { return fmt.Sprintf("Question %d : réponse fixée", c.Index+1) }
func (c DeleteQuiz) Describe() string    { return fmt.Sprintf("Question %d supprimée", c.Index+1) }
func (AddPodcast) Describe() string      { return "Épisode publié" }
func (c DeletePodcast) Describe() string { return fmt.Sprintf("Épisode %s supprimé", c.ID) }
func (c UploadImage) Describe() string   { return fmt.Sprintf("Image importée (%s %d)", c.Target, c.Index+1) }

func (AddHero) apply(ctx context.Context, p *Panel) error {
	return p.state.SetHero(ctx, append(slices.Clone(p.state.Hero), models.NewHeroSlide()))
}

func (c UpdateHero) apply(ctx context.Context, p *Panel) error {
	slides := slices.Clone(p.state.Hero)
	if err := checkIndex(EntityHero, c.Index, len(slides)); err != nil {
		return err
	}
	s := &slides[c.Index]
	switch c.Field {
	case HeroImage:
		s.Image = c.Value
	case HeroTitle:
		s.Title = c.Value
	case HeroSubtitle:
		s.Subtitle = c.Value
	default:
		return fmt.Errorf("%w: hero field %q", shared.ErrUnknownField, c.Field)
	}
	return p.state.SetHero(ctx, slides)
}

func (c DeleteHero) apply(ctx context.Context, p *Panel) error {
	if err := checkIndex(EntityHero, c.Index, len(p.state.Hero)); err != nil {
		return err
	}
	return p.state.SetHero(ctx, slices.Delete(slices.Clone(p.state.Hero), c.Index, c.Index+1))
}

func (c AddVideo) apply(ctx context.Context, p *Panel) error {
	v := c.Video
	if v == (models.Video{}) {
		v = models.NewVideo()
	}
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("%w: video id is empty", shared.ErrInvalidInput)
	}
	v.IsLive = false
	return p.state.SetVideos(ctx, append([]models.Video{v}, p.state.Videos...))
}

func setVideoField(v *models.Video, f VideoField, value string) error {
	switch f {
	case VideoID:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: video id is empty", shared.ErrInvalidInput)
		}
		v.ID = value
	case VideoTitle:
		v.Title = value
	case VideoDate:
		v.Date = value
	case VideoViews:
		v.Views = value
	case VideoImg:
		v.Img = value
	default:
		return fmt.Errorf("%w: video field %q", shared.ErrUnknownField, f)
	}
	return nil
}

func (c UpdateVideo) apply(ctx context.Context, p *Panel) error {
	videos := slices.Clone(p.state.Videos)
	if err := checkIndex(EntityVideo, c.Index, len(videos)); err != nil {
		return err
	}
	if err := setVideoField(&videos[c.Index], c.Field, c.Value); err != nil {
		return err
	}
	return p.state.SetVideos(ctx, videos)
}

func (c DeleteVideo) apply(ctx context.Context, p *Panel) error {
	if err := checkIndex(EntityVideo, c.Index, len(p.state.Videos)); err != nil {
		return err
	}
	return p.state.SetVideos(ctx, slices.Delete(slices.Clone(p.state.Videos), c.Index, c.Index+1))
}

func (c UpdateLive) apply(ctx context.Context, p *Panel) error {
	live := p.state.Live
	if err := setVideoField(&live, c.Field, c.Value); err != nil {
		return err
	}
	live.IsLive = true
	return p.state.SetLive(ctx, live)
}

func (AddPhoto) apply(ctx context.Context, p *Panel) error {
	photo := models.NewPhotoItem(p.newID())
	return p.state.SetPhotos(ctx, append([]models.PhotoItem{photo}, p.state.Photos...))
}

func (c UpdatePhoto) apply(ctx context.Context, p *Panel) error {
	photos := slices.Clone(p.state.Photos)
	if err := checkIndex(EntityPhoto, c.Index, len(photos)); err != nil {
		return err
	}
	ph := &photos[c.Index]
	switch c.Field {
	case PhotoURL:
		ph.URL = c.Value
	case PhotoEvent:
		ph.Event = c.Value
	case PhotoDescription:
		ph.Description = c.Value
	default:
		return fmt.Errorf("%w: photo field %q", shared.ErrUnknownField, c.Field)
	}
	ph.AICaption = ""
	return p.state.SetPhotos(ctx, photos)
}

func (c DeletePhoto) apply(ctx context.Context, p *Panel) error {
	if err := checkIndex(EntityPhoto, c.Index, len(p.state.Photos)); err != nil {
		return err
	}
	return p.state.SetPhotos(ctx, slices.Delete(slices.Clone(p.state.Photos), c.Index, c.Index+1))
}

func (AddQuiz) apply(ctx context.Context, p *Panel) error {
	return p.state.SetQuiz(ctx, append([]models.QuizQuestion{models.NewQuizQuestion()}, p.state.Quiz...))
}

// cloneQuiz deep-copies the pool and checks the index.
func cloneQuiz(p *Panel, i int) ([]models.QuizQuestion, error) {
	if err := checkIndex(EntityQuiz, i, len(p.state.Quiz)); err != nil {
		return nil, err
	}
	out := make([]models.QuizQuestion, len(p.state.Quiz))
	for j, q := range p.state.Quiz {
		out[j] = q.Clone()
	}
	return out, nil
}

func (c UpdateQuiz) apply(ctx context.Context, p *Panel) error {
	qs, err := cloneQuiz(p, c.Index)
	if err != nil {
		return err
	}
	switch c.Field {
	case QuizText:
		if strings.TrimSpace(c.Value) == "" {
			return fmt.Errorf("%w: question text is empty", shared.ErrInvalidInput)
		}
		qs[c.Index].Question = c.Value
	case QuizExplanation:
		qs[c.Index].Explanation = c.Value
	default:
		return fmt.Errorf("%w: quiz field %q", shared.ErrUnknownField, c.Field)
	}
	return p.state.SetQuiz(ctx, qs)
}

func (c SetQuizOption) apply(ctx context.Context, p *Panel) error {
	qs, err := cloneQuiz(p, c.Index)
	if err != nil {
		return err
	}
	if err := checkIndex(EntityQuiz, c.Option, len(qs[c.Index].Options)); err != nil {
		return err
	}
	qs[c.Index].Options[c.Option] = c.Value
	return p.state.SetQuiz(ctx, qs)
}

func (c SetQuizAnswer) apply(ctx context.Context, p *Panel) error {
	qs, err := cloneQuiz(p, c.Index)
	if err != nil {
		return err
	}
	if err := checkIndex(EntityQuiz, c.Answer, models.QuizOptionCount); err != nil {
		return err
	}
	qs[c.Index].CorrectAnswer = c.Answer
	return p.state.SetQuiz(ctx, qs)
}

func (c DeleteQuiz) apply(ctx context.Context, p *Panel) error {
	qs, err := cloneQuiz(p, c.Index)
	if err != nil {
		return err
	}
	return p.state.SetQuiz(ctx, slices.Delete(qs, c.Index, c.Index+1))
}

func (c AddPodcast) apply(ctx context.Context, p *Panel) error {
	ep := c.Episode
	if ep.ID == "" {
		ep.ID = p.newID()
	}
	if ep.Type == "" {
		ep.Type = models.EpisodeAudio
	}
	if err := ep.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if slices.ContainsFunc(p.state.Podcasts, func(e models.PodcastEpisode) bool { return e.ID == ep.ID }) {
		return fmt.Errorf("%w: episode %s already exists", shared.ErrInvalidInput, ep.ID)
	}
	return p.state.SetPodcasts(ctx, append([]models.PodcastEpisode{ep}, p.state.Podcasts...))
}

func (c DeletePodcast) apply(ctx context.Context, p *Panel) error {
	i := slices.IndexFunc(p.state.Podcasts, func(e models.PodcastEpisode) bool { return e.ID == c.ID })
	if i < 0 {
		return fmt.Errorf("%w: no episode %q", shared.ErrOutOfRange, c.ID)
	}
	return p.state.SetPodcasts(ctx, slices.Delete(slices.Clone(p.state.Podcasts), i, i+1))
}

func (c UploadImage) apply(ctx context.Context, p *Panel) error {
	switch c.Target {
	case EntityHero:
		if err := checkIndex(EntityHero, c.Index, len(p.state.Hero)); err != nil {
			return err
		}
	case EntityPhoto:
		if err := checkIndex(EntityPhoto, c.Index, len(p.state.Photos)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: images can only be uploaded to hero or photo, not %q", shared.ErrInvalidArgument, c.Target)
	}

	url, err := p.readImage(c.Path)
	if err != nil {
		return err
	}

	if c.Target == EntityHero {
		return UpdateHero{Index: c.Index, Field: HeroImage, Value: url}.apply(ctx, p)
	}
	return UpdatePhoto{Index: c.Index, Field: PhotoURL, Value: url}.apply(ctx, p)
}
