package domain

import (
	"errors"
	"time"
)

// Role labels are stored verbatim and matched exactly; there is no
// hierarchy between them (ADMIN does not imply USER).
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// ErrStoreUnavailable signals a transient backing-store failure. It must
// never be collapsed into ErrUserNotFound: "the store is down" and "the
// user does not exist" are different answers.
var ErrStoreUnavailable = errors.New("store unavailable")

// User is a persisted account record. Email doubles as the login
// identifier and is unique across all records (exact byte match).
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Roles        []string  `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasRole reports whether the record carries the given role label verbatim.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRoles drops blank labels and duplicates while preserving
// first-seen order. A nil result means the caller supplied no usable roles.
func NormalizeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	var out []string
	for _, r := range roles {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Identity is the request-scoped result of a successful authentication:
// the login identifier plus a snapshot of the role set at that instant.
// It is never persisted; every request rebuilds it from credentials.
type Identity struct {
	Email string
	Roles []string
}

// HasAnyRole reports whether the identity holds at least one of the given
// role labels. Matching is exact-string.
func (i Identity) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
