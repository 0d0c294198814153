package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories are exposed as methods so a transaction can only ever be
// opened from the root, never from inside another one.
type Store interface {
	Tokens() Tokens
	RefreshTokens() RefreshTokens
	SignatureKeys() SignatureKeys
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// the transaction back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// TokenDeleteFilter scopes a registry delete. Nil fields do not filter; an
// empty filter matches every row.
type TokenDeleteFilter struct {
	UserID  *string
	TokenID *string
	ShopID  *int64
}

// Tokens is the registry of issued, non-anonymous access tokens.
type Tokens interface {
	// RegisterToken inserts a record. A duplicate id yields ErrAlreadyExists.
	RegisterToken(ctx context.Context, rec domain.TokenRecord) error

	// GetToken returns the record for a token id.
	GetToken(ctx context.Context, id string) (domain.TokenRecord, error)

	// IsRegistered reports whether a record with the id exists.
	IsRegistered(ctx context.Context, id string) (bool, error)

	// DeleteExpiredUserTokens removes the user's rows with expires_at <= now.
	DeleteExpiredUserTokens(ctx context.Context, userID string, now time.Time) (int64, error)

	// DeleteExpiredTokens removes every row with expires_at <= now.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)

	CountUserTokens(ctx context.Context, userID string) (int64, error)

	// DeleteTokens removes the rows matching every set field of f.
	DeleteTokens(ctx context.Context, f TokenDeleteFilter) (int64, error)

	UserOwnsToken(ctx context.Context, userID, tokenID string) (bool, error)

	ListTokens(ctx context.Context, f domain.TokenFilter, p domain.Pagination, s domain.Sorting) ([]domain.TokenRecord, error)
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshToken looks a row up by its opaque token value.
	GetRefreshToken(ctx context.Context, token string) (domain.RefreshToken, error)

	// DeleteExpiredRefreshTokens removes every row with expires_at <= now.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)

	DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error)
}

type SignatureKeys interface {
	CreateSignatureKey(ctx context.Context, key domain.SignatureKey) error

	// GetActiveSignatureKey returns the newest non-retired key.
	GetActiveSignatureKey(ctx context.Context) (domain.SignatureKey, error)

	// RetireSignatureKeys marks every active key retired at the given time.
	RetireSignatureKeys(ctx context.Context, at time.Time) error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during credential login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// ListUserGroups returns the group ids the user belongs to.
	ListUserGroups(ctx context.Context, userID string) ([]string, error)

	AddUserGroup(ctx context.Context, userID, groupID string) error
	RemoveUserGroup(ctx context.Context, userID, groupID string) error
}
