package user

import (
	"time"

	userDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/user"
	"github.com/railtrace/railway-assets/internal/rbac"
)

// User is the directory entry managed by admins. It is distinct from the
// resolved session user: the directory lives in Postgres while the session
// may come from the remote provider or the demo credential table.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      rbac.Role
	Division  string
	Section   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
}

func FromDataModel(dm *userDatamodel.User) *User {
	return &User{
		ID:        dm.ID,
		Email:     dm.Email,
		Name:      dm.Name,
		Role:      rbac.Role(dm.Role),
		Division:  dm.Division,
		Section:   dm.Section,
		IsActive:  dm.IsActive,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
		LastLogin: dm.LastLogin,
	}
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		RoleLabel: u.Role.Label(),
		Division:  u.Division,
		Section:   u.Section,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
