package user

import (
	"strings"
	"time"

	"github.com/railtrace/railway-assets/internal/rbac"
)

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	RoleLabel string     `json:"role_label"`
	Division  string     `json:"division,omitempty"`
	Section   string     `json:"section,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Division string `json:"division"`
	Section  string `json:"section"`
}

func (d CreateUserDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email format is invalid"}
	}
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	if len(d.Password) < 6 {
		return ValidationError{Msg: "password must be at least 6 characters"}
	}
	if !rbac.Role(d.Role).Valid() {
		return ValidationError{Msg: "role is not recognized"}
	}
	return nil
}

type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Division *string `json:"division,omitempty"`
	Section  *string `json:"section,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Msg: "name cannot be empty"}
	}
	if d.Role != nil && !rbac.Role(*d.Role).Valid() {
		return ValidationError{Msg: "role is not recognized"}
	}
	return nil
}

type ListFilter struct {
	Role     string
	Division string
	Active   *bool
}

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}
