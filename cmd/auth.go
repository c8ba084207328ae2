package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/auth"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Login verifies the member and persists the profile and auth flag, as the TUI form does.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(r.config.Auth, r.credentials)
	if err != nil {
		return err
	}
	gate := auth.NewGate(state, verifier)
	if gate.Status() == auth.LoggedIn && state.Profile != nil {
		return r.writePlain("Déjà connecté en tant que %s.\n", state.Profile.Name)
	}

	sub := auth.Submission{
		Name:   cmd.String("name"),
		Email:  cmd.String("email"),
		Signup: cmd.Bool("signup"),
	}
	if sub.Email == "" {
		if sub.Email, err = r.prompt("Email : "); err != nil {
			return err
		}
	}
	if sub.Signup && sub.Name == "" {
		if sub.Name, err = r.prompt("Nom complet : "); err != nil {
			return err
		}
	}
	if sub.Password, err = r.readPassword("Mot de passe : "); err != nil {
		return err
	}

	r.logger.Debug("verifying credentials", "email", sub.Email, "signup", sub.Signup)
	profile, err := gate.Login(ctx, sub)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	r.logger.Info("logged in", "email", profile.Email)
	return r.writePlain("Bienvenue, %s.\n", profile.Name)
}

// Logout clears the persisted auth flag. The stored profile is kept.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	if !state.Authenticated {
		return r.writePlain("Aucune session active.\n")
	}
	if err := auth.NewGate(state, auth.DelayVerifier{}).Forget(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return r.writePlain("Déconnecté.\n")
}
