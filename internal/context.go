package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// AuthUser is the authenticated principal carried through request contexts.
// Permissions are derived from the role at token-validation time, not stored.
type AuthUser struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

func (u *AuthUser) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *AuthUser) HasAnyPermission(permissions []string) bool {
	for _, userPerm := range u.Permissions {
		for _, requiredPerm := range permissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (u *AuthUser) IsAdmin() bool {
	return u.Role == "admin"
}

func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	u, ok := ctx.Value(ContextUserKey).(*AuthUser)
	return u, ok
}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
