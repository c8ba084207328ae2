// package models defines the data model for the church community platform
package models

import (
	"fmt"
	"strings"
)

// Validator is implemented by records that check their own invariants at the edit boundary.
type Validator interface {
	Validate() error // Validate returns an error describing the first broken invariant
}

// Session records whether the member passed the auth gate.
type Session struct {
	Authenticated bool `json:"authenticated"`
}

// HeroSlide is one slide of the home carousel.
type HeroSlide struct {
	Image    string `json:"image"`
	Title    string `json:"title"` // may contain rich-text markup
	Subtitle string `json:"subtitle"`
}

// Video is a sermon archive entry or the live stream pointer.
type Video struct {
	ID     string `json:"id"` // external video identifier
	Title  string `json:"title"`
	Date   string `json:"date,omitempty"`
	Views  string `json:"views,omitempty"`
	Img    string `json:"img,omitempty"`
	IsLive bool   `json:"isLive"`
}

// PhotoItem is a gallery photo. AICaption is session-local and never written to storage.
type PhotoItem struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Event       string `json:"event"`
	Description string `json:"description"`
	AICaption   string `json:"-"`
}

// QuizQuestion is a four-option question with the index of the correct answer.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizOptionCount is the number of options every question carries.
const QuizOptionCount = 4

// Validate checks the option count and the answer index.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("expected %d options, got %d", QuizOptionCount, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= QuizOptionCount {
		return fmt.Errorf("correct answer %d outside 0-%d", q.CorrectAnswer, QuizOptionCount-1)
	}
	return nil
}

// Clone returns a copy that does not share the options slice.
func (q QuizQuestion) Clone() QuizQuestion {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// EpisodeType is the medium of a [PodcastEpisode].
type EpisodeType string

const (
	EpisodeAudio EpisodeType = "audio"
	EpisodeVideo EpisodeType = "video"
	EpisodeText  EpisodeType = "text"
)

// Valid reports whether t is one of the known episode types.
func (t EpisodeType) Valid() bool {
	switch t {
	case EpisodeAudio, EpisodeVideo, EpisodeText:
		return true
	}
	return false
}

// PodcastEpisode is an entry of the sermon library.
type PodcastEpisode struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Img         string      `json:"img"`
	AudioURL    string      `json:"audioUrl"`
	Duration    string      `json:"duration"`
	Type        EpisodeType `json:"type"`
}

// Validate checks the required fields of an uploaded episode.
func (e PodcastEpisode) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("episode title is empty")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("unknown episode type %q", e.Type)
	}
	return nil
}

// StepStatus is the state of a member's [UserStep].
type StepStatus string

const (
	StepInProgress StepStatus = "In Progress"
	StepCompleted  StepStatus = "Completed"
	StepPending    StepStatus = "Pending"
)

// UserStep is one stage of a member's spiritual journey.
type UserStep struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   StepStatus `json:"status"`
	Progress int        `json:"progress"`
	NextTask string     `json:"nextTask"`
}

// FontSize is the reading size preference.
type FontSize string

const (
	FontNormal FontSize = "normal"
	FontLarge  FontSize = "large"
	FontExtra  FontSize = "extra"
)

// Preferences holds a member's display and contact settings.
type Preferences struct {
	Notifications bool     `json:"notifications"`
	Language      string   `json:"language"`
	Newsletter    bool     `json:"newsletter"`
	FontSize      FontSize `json:"fontSize"`
	HighContrast  bool     `json:"highContrast"`
}

// UserProfile is the member record shown in the member space.
type UserProfile struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhotoURL    string      `json:"photoUrl,omitempty"`
	MemberSince string      `json:"memberSince"`
	Groups      []string    `json:"groups"`
	Steps       []UserStep  `json:"steps"`
	Preferences Preferences `json:"preferences"`
}

// Validate checks the fields a profile edit form can break.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is empty")
	}
	switch p.Preferences.FontSize {
	case FontNormal, FontLarge, FontExtra:
	default:
		return fmt.Errorf("unknown font size %q", p.Preferences.FontSize)
	}
	for _, s := range p.Steps {
		switch s.Status {
		case StepInProgress, StepCompleted, StepPending:
		default:
			return fmt.Errorf("step %s has unknown status %q", s.ID, s.Status)
		}
		if s.Progress < 0 || s.Progress > 100 {
			return fmt.Errorf("step %s progress %d outside 0-100", s.ID, s.Progress)
		}
	}
	return nil
}

// Initial returns the first letter of the member's name, used as the avatar placeholder.
func (p UserProfile) Initial() string {
	for _, r := range p.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Theme is the persisted display theme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// PaymentMethod enumerates the donation channels.
type PaymentMethod string

const (
	PaymentWave        PaymentMethod = "Wave"
	PaymentOrangeMoney PaymentMethod = "Orange Money"
	PaymentMTNMoney    PaymentMethod = "MTN Money"
	PaymentMoov        PaymentMethod = "Moov Money"
	PaymentStripe      PaymentMethod = "Card / Stripe"
	PaymentPayPal      PaymentMethod = "PayPal"
)

// MobileMoneyMethods are the channels offered by the donation form.
var MobileMoneyMethods = []PaymentMethod{PaymentWave, PaymentOrangeMoney, PaymentMTNMoney, PaymentMoov}

// ChurchEvent is a calendar entry.
type ChurchEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"` // Service, Conference, Retreat, Community
	Location string `json:"location,omitempty"`
	Image    string `json:"image"`
}

// Testimony is a community post.
type Testimony struct {
	ID      string `json:"id"`
	User    string `json:"user"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Likes   int    `json:"likes"`
	Date    string `json:"date"`
}

// DonationHistoryItem is a past gift shown in the member space.
type DonationHistoryItem struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Amount int    `json:"amount"`
	Method string `json:"method"`
	Status string `json:"status"` // Completed or Pending
}

// MonthlyTotal is one bar of the transparency chart.
type MonthlyTotal struct {
	Month  string `json:"name"`
	Amount int    `json:"amount"`
}

// Verse is one numbered verse of a chapter.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
