package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/identity"
	"github.com/railtrace/railway-assets/internal/profile"
	"github.com/railtrace/railway-assets/internal/rbac"
	"github.com/railtrace/railway-assets/internal/user"
)

// StorageKey is the durable local-store key holding the persisted session.
const StorageKey = "railway_user"

// User is the resolved authenticated identity. Division and Section are
// organizational scope present only for some roles.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      rbac.Role `json:"role"`
	Division  string    `json:"division,omitempty"`
	Section   string    `json:"section,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// IdentityProvider is the remote authentication surface the resolver depends
// on. All failures it returns are treated as fallback triggers.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*identity.Identity, error)
	SignUp(ctx context.Context, email, password string) (*identity.Identity, error)
	SignOut(ctx context.Context) error
	Subscribe(ctx context.Context, callback func(*identity.Identity)) error
}

// ProfileStore is the remote document store holding user profiles keyed by
// identity id.
type ProfileStore interface {
	GetDocument(ctx context.Context, id string) (*profile.Document, error)
	SetDocument(ctx context.Context, id string, doc *profile.Document) error
}

// LocalStore is the durable key/value storage used for session continuity
// across restarts.
type LocalStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Directory is the seeded user directory, consulted as a second local
// credential source after the demo table and notified of successful logins.
// A nil directory disables the integration.
type Directory interface {
	VerifyPassword(email, password string) (*user.UserResponse, error)
	TouchLastLogin(email string)
}

// persistedUser is the wire shape of a stored session record. Timestamps are
// RFC3339 at second precision; sub-second precision is lost through the
// round trip.
type persistedUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Division  string `json:"division,omitempty"`
	Section   string `json:"section,omitempty"`
	CreatedAt string `json:"createdAt"`
	LastLogin string `json:"lastLogin"`
}

func encodeUser(u *User) (string, error) {
	rec := persistedUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		Division:  u.Division,
		Section:   u.Section,
		CreatedAt: u.CreatedAt.Truncate(time.Second).Format(time.RFC3339),
		LastLogin: u.LastLogin.Truncate(time.Second).Format(time.RFC3339),
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeUser parses a persisted record. Any malformation, including an
// unknown role, yields ErrCorruptSession so the caller discards the record.
func decodeUser(raw string) (*User, error) {
	var rec persistedUser
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, internal.ErrCorruptSession.WithCause(err)
	}

	role, ok := rbac.ParseRole(rec.Role)
	if !ok || rec.ID == "" || rec.Email == "" {
		return nil, internal.ErrCorruptSession
	}

	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return nil, internal.ErrCorruptSession.WithCause(err)
	}
	lastLogin, err := time.Parse(time.RFC3339, rec.LastLogin)
	if err != nil {
		return nil, internal.ErrCorruptSession.WithCause(err)
	}

	return &User{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		Role:      role,
		Division:  rec.Division,
		Section:   rec.Section,
		CreatedAt: createdAt,
		LastLogin: lastLogin,
	}, nil
}
