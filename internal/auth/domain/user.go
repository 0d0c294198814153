package domain

import "time"

// User is a shop customer or admin as seen by the auth layer.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2 encoded, empty for anonymous users
	Anonymous    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AnonymousUser returns the user an unauthenticated caller acts as.
func AnonymousUser(id string) User {
	return User{ID: id, Anonymous: true}
}

// Reserved groups.
const (
	GroupAdmin     = "admin"
	GroupBlocked   = "blocked"
	GroupAnonymous = "anonymous"
)
