package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/repositories"
	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/store"
)

func newState(t *testing.T) (*store.State, store.Backend) {
	t.Helper()
	b := store.NewMemoryBackend()
	return store.LoadState(context.Background(), b, nil), b
}

var errReadOnly = errors.New("read-only")

type readOnlyBackend struct {
	*store.MemoryBackend
}

func (readOnlyBackend) Put(context.Context, string, string) error { return errReadOnly }

func TestSubmissionValidate(t *testing.T) {
	tc := []struct {
		name    string
		sub     Submission
		wantErr bool
	}{
		{name: "login", sub: Submission{Email: "a@b.c", Password: "x"}},
		{name: "signup", sub: Submission{Name: "Awa", Email: "a@b.c", Password: "x", Signup: true}},
		{name: "missing email", sub: Submission{Password: "x"}, wantErr: true},
		{name: "missing password", sub: Submission{Email: "a@b.c"}, wantErr: true},
		{name: "signup without name", sub: Submission{Email: "a@b.c", Password: "x", Signup: true}, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrMissingCredentials)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDelayVerifier(t *testing.T) {
	t.Run("waits the delay", func(t *testing.T) {
		v := DelayVerifier{Delay: 30 * time.Millisecond}
		start := time.Now()

		id, err := v.Verify(context.Background(), Submission{Name: " Awa ", Email: "a@b.c", Password: "x"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
		assert.Equal(t, "Awa", id.Name)
		assert.Equal(t, "a@b.c", id.Email)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := DelayVerifier{Delay: time.Hour}.Verify(ctx, Submission{Email: "a@b.c", Password: "x"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPasswordVerifier(t *testing.T) {
	db, err := shared.OpenStore(shared.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v := NewPasswordVerifier(repositories.NewCredentialRepository(db))
	v.Cost = bcrypt.MinCost
	ctx := context.Background()

	_, err = v.Verify(ctx, Submission{Email: "awa@example.com", Password: "amen"})
	assert.ErrorIs(t, err, shared.ErrAuthFailed, "unknown email should fail")

	id, err := v.Verify(ctx, Submission{Name: "Awa", Email: "Awa@Example.com", Password: "amen", Signup: true})
	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", id.Email)

	id, err = v.Verify(ctx, Submission{Email: "awa@example.com", Password: "amen"})
	require.NoError(t, err)
	assert.Equal(t, "Awa", id.Name)

	_, err = v.Verify(ctx, Submission{Email: "awa@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, shared.ErrAuthFailed)
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier(shared.AuthConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DelayVerifier{Delay: DefaultDelay}, v)

	_, err = NewVerifier(shared.AuthConfig{Verifier: "password"}, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)

	_, err = NewVerifier(shared.AuthConfig{Verifier: "oauth"}, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)
}

func TestNewProfile(t *testing.T) {
	p := NewProfile(Identity{Email: "a@b.c"})

	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, "Juin 2024", p.MemberSince)
	assert.Equal(t, []string{"Nouveau Fidèle"}, p.Groups)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, "wel", p.Steps[0].ID)
	assert.Equal(t, models.StepInProgress, p.Steps[0].Status)
	assert.Equal(t, 20, p.Steps[0].Progress)
	assert.Equal(t, models.Preferences{Notifications: true, Language: "Français", Newsletter: true, FontSize: models.FontNormal}, p.Preferences)
	assert.NoError(t, p.Validate())
}

func TestGate(t *testing.T) {
	ctx := context.Background()
	sub := Submission{Name: "Awa", Email: "a@b.c", Password: "x"}

	t.Run("login persists profile and flag", func(t *testing.T) {
		state, b := newState(t)
		g := NewGate(state, DelayVerifier{Delay: 10 * time.Millisecond})
		assert.Equal(t, LoggedOut, g.Status())

		profile, err := g.Login(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, LoggedIn, g.Status())
		assert.Equal(t, "Awa", profile.Name)

		reloaded := store.LoadState(ctx, b, nil)
		assert.True(t, reloaded.Authenticated)
		require.NotNil(t, reloaded.Profile)
		assert.Equal(t, "Awa", reloaded.Profile.Name)
	})

	t.Run("begin twice is rejected", func(t *testing.T) {
		state, _ := newState(t)
		g := NewGate(state, DelayVerifier{})

		require.NoError(t, g.Begin(sub))
		assert.Equal(t, LoggingIn, g.Status())
		assert.ErrorIs(t, g.Begin(sub), shared.ErrAuthInProgress)

		g.Fail()
		assert.Equal(t, LoggedOut, g.Status())
	})

	t.Run("invalid submission stays logged out", func(t *testing.T) {
		state, _ := newState(t)
		g := NewGate(state, DelayVerifier{})

		_, err := g.Login(ctx, Submission{})
		assert.ErrorIs(t, err, shared.ErrMissingCredentials)
		assert.Equal(t, LoggedOut, g.Status())
	})

	t.Run("complete without begin", func(t *testing.T) {
		state, _ := newState(t)
		_, err := NewGate(state, DelayVerifier{}).Complete(ctx, Identity{Name: "x"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("logout keeps the stored profile", func(t *testing.T) {
		state, b := newState(t)
		g := NewGate(state, DelayVerifier{})
		_, err := g.Login(ctx, sub)
		require.NoError(t, err)

		before, _ := b.Get(ctx, store.KeyProfile)
		require.NoError(t, g.Logout())
		after, _ := b.Get(ctx, store.KeyProfile)

		assert.Equal(t, LoggedOut, g.Status())
		assert.False(t, state.Authenticated)
		assert.Equal(t, before, after)
		assert.ErrorIs(t, g.Logout(), shared.ErrNotAuthenticated)

		_, err = g.Login(ctx, sub)
		require.NoError(t, err)
		again, _ := b.Get(ctx, store.KeyProfile)
		assert.Equal(t, before, again)
	})

	t.Run("starts logged in from stored flag", func(t *testing.T) {
		state, _ := newState(t)
		require.NoError(t, state.SetAuthenticated(ctx, true))
		assert.Equal(t, LoggedIn, NewGate(state, DelayVerifier{}).Status())
	})

	t.Run("failed write stays logged out", func(t *testing.T) {
		b := &readOnlyBackend{MemoryBackend: store.NewMemoryBackend()}
		state := store.LoadState(ctx, b, nil)
		g := NewGate(state, DelayVerifier{})

		_, err := g.Login(ctx, sub)
		assert.ErrorIs(t, err, errReadOnly)
		assert.Equal(t, LoggedOut, g.Status())
		assert.False(t, state.Authenticated)
		assert.Nil(t, state.Profile)
	})

	t.Run("forget persists the flag", func(t *testing.T) {
		state, b := newState(t)
		g := NewGate(state, DelayVerifier{})
		_, err := g.Login(ctx, sub)
		require.NoError(t, err)

		require.NoError(t, g.Forget(ctx))
		assert.False(t, store.LoadState(ctx, b, nil).Authenticated)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "logging_in", LoggingIn.String())
	assert.Equal(t, "", Status(42).String())
}
