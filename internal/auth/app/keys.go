package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/shopauth/internal/auth/service"
)

// initKeys makes sure a signature key exists. A stored key that can no
// longer be decrypted (e.g. the master key changed) is replaced, which
// invalidates every outstanding token.
func (app *Application) initKeys(ctx context.Context) error {
	created, err := app.services.Keys.EnsureKey(ctx)
	if err != nil {
		if errors.Is(err, service.ErrMissingSignatureKey) {
			return fmt.Errorf("failed to initialize signature key: %w", err)
		}

		app.logger.Warn("stored signature key is unreadable, generating a new one", "error", err)
		if err := app.services.Keys.Regenerate(ctx); err != nil {
			return fmt.Errorf("failed to regenerate signature key: %w", err)
		}
		created = true
	}

	if created {
		app.logger.Warn("generated a new signature key, all existing tokens are now invalid")
	} else {
		app.logger.Info("signature key loaded")
	}
	return nil
}

// bootstrap seeds the configured admin into an empty user directory.
func (app *Application) bootstrap(ctx context.Context) error {
	if app.cfg.AdminUsername == "" {
		return nil
	}

	admin, password, err := app.services.Bootstrap.Bootstrap(ctx, app.cfg.AdminUsername, app.cfg.AdminPassword)
	switch {
	case errors.Is(err, service.ErrBootstrapAlready):
		app.logger.Debug("user directory already seeded, skipping bootstrap")
		return nil
	case err != nil:
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	if app.cfg.AdminPassword == "" {
		// Only chance to see it.
		app.logger.Warn("generated admin password", "username", admin.Username, "password", password)
	}
	return nil
}
