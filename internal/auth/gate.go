package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/store"
)

// Status is the gate state.
type Status int

const (
	LoggedOut Status = iota
	LoggingIn
	LoggedIn
)

func (s Status) String() string {
	switch s {
	case LoggedOut:
		return "logged_out"
	case LoggingIn:
		return "logging_in"
	case LoggedIn:
		return "logged_in"
	}
	return ""
}

// DefaultName replaces an empty submitted name.
const DefaultName = "Fidèle du Tabernacle"

// NewProfile synthesizes the profile of a member who just authenticated.
func NewProfile(id Identity) *models.UserProfile {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = DefaultName
	}
	return &models.UserProfile{
		Name:        name,
		Email:       id.Email,
		MemberSince: "Juin 2024",
		Groups:      []string{"Nouveau Fidèle"},
		Steps: []models.UserStep{{
			ID:       "wel",
			Title:    "Accueil",
			Status:   models.StepInProgress,
			Progress: 20,
			NextTask: "Visite du Tabernacle",
		}},
		Preferences: models.Preferences{
			Notifications: true,
			Language:      "Français",
			Newsletter:    true,
			FontSize:      models.FontNormal,
			HighContrast:  false,
		},
	}
}

// Gate owns the session status. It writes the profile and auth flag through the state.
type Gate struct {
	state    *store.State
	verifier Verifier
	status   Status
}

// NewGate starts LoggedIn when the stored auth flag is set, LoggedOut otherwise.
func NewGate(state *store.State, v Verifier) *Gate {
	g := &Gate{state: state, verifier: v}
	if state.Authenticated {
		g.status = LoggedIn
	}
	return g
}

func (g *Gate) Status() Status { return g.status }

// Begin enters LoggingIn after validating the submission.
func (g *Gate) Begin(s Submission) error {
	switch g.status {
	case LoggingIn:
		return shared.ErrAuthInProgress
	case LoggedIn:
		return fmt.Errorf("%w: already logged in", shared.ErrInvalidInput)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	g.status = LoggingIn
	return nil
}

// Verify runs the verifier. It does not touch the gate and may run off the UI loop.
func (g *Gate) Verify(ctx context.Context, s Submission) (Identity, error) {
	return g.verifier.Verify(ctx, s)
}

// Complete finishes a login: the synthesized profile and the auth flag are persisted.
func (g *Gate) Complete(ctx context.Context, id Identity) (*models.UserProfile, error) {
	if g.status != LoggingIn {
		return nil, fmt.Errorf("%w: no login in progress", shared.ErrInvalidInput)
	}

	profile := NewProfile(id)
	if err := g.state.SetProfile(ctx, profile); err != nil {
		g.status = LoggedOut
		return nil, err
	}
	if err := g.state.SetAuthenticated(ctx, true); err != nil {
		g.status = LoggedOut
		return nil, err
	}
	g.status = LoggedIn
	return profile, nil
}

// Fail abandons a login in progress.
func (g *Gate) Fail() {
	if g.status == LoggingIn {
		g.status = LoggedOut
	}
}

// Login runs Begin, Verify and Complete in sequence.
func (g *Gate) Login(ctx context.Context, s Submission) (*models.UserProfile, error) {
	if err := g.Begin(s); err != nil {
		return nil, err
	}
	id, err := g.Verify(ctx, s)
	if err != nil {
		g.Fail()
		return nil, err
	}
	return g.Complete(ctx, id)
}

// Logout clears the in-memory session only. The stored profile and auth flag are left as they are.
func (g *Gate) Logout() error {
	if g.status != LoggedIn {
		return shared.ErrNotAuthenticated
	}
	g.status = LoggedOut
	g.state.Authenticated = false
	return nil
}

// Forget logs out and also persists the auth flag as false, so the next start shows the form.
func (g *Gate) Forget(ctx context.Context) error {
	if g.status == LoggedIn {
		g.status = LoggedOut
	}
	return g.state.SetAuthenticated(ctx, false)
}
