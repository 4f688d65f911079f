package rbac

import (
	"log/slog"
	"net/http"

	"github.com/railtrace/railway-assets/internal"
)

// Authorization guards HTTP routes with permission checks against the
// context user injected by the auth middleware.
type Authorization struct {
	logger *slog.Logger
}

func NewAuthorization(logger *slog.Logger) *Authorization {
	return &Authorization{logger: logger}
}

// Require returns a middleware that rejects requests whose context user
// lacks the given permission id.
func (a *Authorization) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				a.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasPermission(permission) {
				a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"role", user.Role,
					"required_permission", permission)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny is like Require but passes when the user holds at least one of
// the listed permissions.
func (a *Authorization) RequireAny(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				a.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasAnyPermission(permissions) {
				a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"role", user.Role,
					"required_permissions", permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards administrative routes.
func (a *Authorization) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.IsAdmin() {
				a.logger.WarnContext(r.Context(), "access denied: admin role required",
					"user_id", user.ID,
					"role", user.Role)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
