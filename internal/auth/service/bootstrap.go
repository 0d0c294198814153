package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

var (
	ErrBootstrapAlready             = errors.New("system already bootstrapped")
	ErrBootstrapFailedToCreateAdmin = errors.New("failed to create admin user")
)

// BootstrapService seeds the first admin into an empty user directory.
type BootstrapService struct {
	Users *UserService
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Users.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates username in the admin group. An empty password is
// replaced by a generated one, which is returned so the caller can show it
// once.
func (s *BootstrapService) Bootstrap(ctx context.Context, username, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	if bootstrapped, err := s.IsBootstrapped(ctx); err != nil {
		return domain.User{}, "", err
	} else if bootstrapped {
		return domain.User{}, "", ErrBootstrapAlready
	}

	if password == "" {
		generated, err := cryptox.GeneratePassword()
		if err != nil {
			l.Error("failed to generate admin password", slog.Any("error", err))
			return domain.User{}, "", ErrBootstrapFailedToCreateAdmin
		}
		password = generated
	}

	admin, err := s.Users.CreateUser(ctx, username, password, domain.GroupAdmin)
	if err != nil {
		l.Error("failed to create admin user", slog.String("username", username), slog.Any("error", err))
		return domain.User{}, "", ErrBootstrapFailedToCreateAdmin
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", admin.ID))
	return admin, password, nil
}
