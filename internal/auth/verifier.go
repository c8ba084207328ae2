package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/desertthunder/tabernacle/internal/repositories"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Submission is what the auth form sends.
type Submission struct {
	Name     string
	Email    string
	Password string
	Signup   bool
}

// Validate checks the fields the form marks as required.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Email) == "" || s.Password == "" {
		return fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}
	if s.Signup && strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required to sign up", shared.ErrMissingCredentials)
	}
	return nil
}

// Identity is the verified member.
type Identity struct {
	Name  string
	Email string
}

// Verifier checks a submission.
type Verifier interface {
	Verify(ctx context.Context, s Submission) (Identity, error)
}

// DefaultDelay is the simulated verification time.
const DefaultDelay = 1500 * time.Millisecond

// DelayVerifier accepts any valid submission after Delay.
type DelayVerifier struct {
	Delay time.Duration
}

func (v DelayVerifier) Verify(ctx context.Context, s Submission) (Identity, error) {
	if err := s.Validate(); err != nil {
		return Identity{}, err
	}

	timer := time.NewTimer(v.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Identity{}, ctx.Err()
	case <-timer.C:
	}

	return Identity{Name: strings.TrimSpace(s.Name), Email: strings.TrimSpace(s.Email)}, nil
}

// CredentialStore persists password hashes.
type CredentialStore interface {
	Get(ctx context.Context, email string) (*repositories.Credential, error)
	Upsert(ctx context.Context, c repositories.Credential) error
}

// PasswordVerifier checks passwords against bcrypt hashes. Signing up stores a new hash,
// replacing any previous one for the same email.
type PasswordVerifier struct {
	Store CredentialStore
	Cost  int
}

// NewPasswordVerifier creates a PasswordVerifier using [bcrypt.DefaultCost].
func NewPasswordVerifier(store CredentialStore) *PasswordVerifier {
	return &PasswordVerifier{Store: store, Cost: bcrypt.DefaultCost}
}

func (v *PasswordVerifier) Verify(ctx context.Context, s Submission) (Identity, error) {
	if err := s.Validate(); err != nil {
		return Identity{}, err
	}
	if s.Signup {
		return v.register(ctx, s)
	}

	cred, err := v.Store.Get(ctx, s.Email)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return Identity{}, fmt.Errorf("%w: unknown email", shared.ErrAuthFailed)
		}
		return Identity{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(s.Password)); err != nil {
		return Identity{}, fmt.Errorf("%w: wrong password", shared.ErrAuthFailed)
	}
	return Identity{Name: cred.Name, Email: cred.Email}, nil
}

func (v *PasswordVerifier) register(ctx context.Context, s Submission) (Identity, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := repositories.Credential{
		Email:        repositories.NormalizeEmail(s.Email),
		Name:         strings.TrimSpace(s.Name),
		PasswordHash: string(hash),
	}
	if err := v.Store.Upsert(ctx, cred); err != nil {
		return Identity{}, err
	}
	return Identity{Name: cred.Name, Email: cred.Email}, nil
}

// NewVerifier builds the verifier named in the config: "delay" (default) or "password".
func NewVerifier(cfg shared.AuthConfig, store CredentialStore) (Verifier, error) {
	switch strings.ToLower(cfg.Verifier) {
	case "", "delay":
		d := cfg.Delay.Duration
		if d <= 0 {
			d = DefaultDelay
		}
		return DelayVerifier{Delay: d}, nil
	case "password":
		if store == nil {
			return nil, fmt.Errorf("%w: password verifier needs a credential store", shared.ErrInvalidConfig)
		}
		return NewPasswordVerifier(store), nil
	}
	return nil, fmt.Errorf("%w: unknown verifier %q", shared.ErrInvalidConfig, cfg.Verifier)
}
