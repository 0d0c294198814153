package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/idx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// Lockout throttles repeated failed logins for a key.
type Lockout interface {
	Locked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// RefreshInvalidator drops every refresh token of a user.
type RefreshInvalidator interface {
	InvalidateAllForUser(ctx context.Context, userID string) (int64, error)
}

// UserService is the sqlite-backed user directory. It authenticates
// credentials, resolves ids and reports group memberships.
type UserService struct {
	Store   store.Store
	IDs     idx.Generator
	Lockout Lockout            // optional
	Refresh RefreshInvalidator // optional, run on password change
}

// Login checks username and password against the stored argon2 hash. Both
// empty yields an anonymous user with a fresh id.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" && password == "" {
		return domain.AnonymousUser(s.IDs.NewID()), nil
	}
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidLogin
	}

	if s.Lockout != nil {
		locked, err := s.Lockout.Locked(ctx, username)
		if err != nil {
			return domain.User{}, err
		}
		if locked {
			l.Warn("login attempt on locked account", slog.String("username", username))
			return domain.User{}, ErrInvalidLogin
		}
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if err != nil || cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		s.recordFailure(ctx, username)
		return domain.User{}, ErrInvalidLogin
	}

	if s.Lockout != nil {
		if err := s.Lockout.Reset(ctx, username); err != nil {
			l.Error("failed to reset login lockout", slog.Any("error", err))
		}
	}
	return user, nil
}

func (s *UserService) recordFailure(ctx context.Context, username string) {
	l := slogx.FromContext(ctx)
	l.Warn("invalid login", slog.String("username", username))

	if s.Lockout == nil {
		return
	}
	n, err := s.Lockout.Fail(ctx, username)
	if err != nil {
		l.Error("failed to record login failure", slog.Any("error", err))
		return
	}
	l.Debug("login failure recorded", slog.String("username", username), slog.Int64("failures", n))
}

// UserByID fetches a user; unknown ids are ErrUserNotFound.
func (s *UserService) UserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UserGroupIDs lists the user's groups. Ids unknown to the directory,
// anonymous users among them, belong to the anonymous group only.
func (s *UserService) UserGroupIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	if _, err := s.UserByID(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return []string{domain.GroupAnonymous}, nil
		}
		return nil, err
	}

	groups, err := s.Store.Users().ListUserGroups(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user groups: %w", err)
	}
	return groups, nil
}

// CreateUser stores a new user with an argon2 password hash and the given
// group memberships.
func (s *UserService) CreateUser(ctx context.Context, username, password string, groups ...string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidRequest)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{ID: idx.New().String(), Username: username, PasswordHash: hash}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		for _, g := range groups {
			if err := tx.Users().AddUserGroup(ctx, user.ID, g); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, fmt.Errorf("%w: username taken", ErrInvalidRequest)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the user's password and drops their refresh
// tokens.
func (s *UserService) ChangePassword(ctx context.Context, userID, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidRequest)
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if s.Refresh != nil {
		if _, err := s.Refresh.InvalidateAllForUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// SetBlocked adds or removes the user from the blocked group.
func (s *UserService) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	if _, err := s.UserByID(ctx, userID); err != nil {
		return err
	}
	if blocked {
		return s.Store.Users().AddUserGroup(ctx, userID, domain.GroupBlocked)
	}
	return s.Store.Users().RemoveUserGroup(ctx, userID, domain.GroupBlocked)
}
