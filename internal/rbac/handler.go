package rbac

import (
	"net/http"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/transport"
	"github.com/railtrace/railway-assets/pkg/logger"
)

// Handler serves the role-scoped navigation and permission lookups plus the
// full role catalog used by the roles page.
type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
	}
}

type roleEntry struct {
	Role        Role     `json:"role"`
	Label       string   `json:"label"`
	Permissions []string `json:"permissions"`
}

// GetNavigation handles GET /navigation: the sidebar entries for the
// authenticated user's role.
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role, valid := ParseRole(user.Role)
	if !valid {
		h.Logger.Warn("navigation requested for unknown role", "role", user.Role, "user_id", user.ID)
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"role":  role,
		"items": NavItemsForRole(role),
	})
}

// GetPermissions handles GET /permissions: the permission-id set for the
// authenticated user's role.
func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role, valid := ParseRole(user.Role)
	if !valid {
		h.Logger.Warn("permissions requested for unknown role", "role", user.Role, "user_id", user.ID)
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"role":        role,
		"permissions": PermissionsForRole(role),
	})
}

// GetRoleCatalog handles GET /roles: every role with its label and
// permission set, plus the permission reference table.
func (h *Handler) GetRoleCatalog(w http.ResponseWriter, r *http.Request) {
	entries := make([]roleEntry, 0, len(Roles))
	for _, role := range Roles {
		entries = append(entries, roleEntry{
			Role:        role,
			Label:       role.Label(),
			Permissions: PermissionsForRole(role),
		})
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"roles":       entries,
		"permissions": PermissionCatalog(),
	})
}
