package session

import "github.com/railtrace/railway-assets/internal/rbac"

// LoginDTO is the transport shape used by the HTTP handler to accept login
// requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpDTO carries the account-creation fields. Role is optional and
// defaults to inspector; an unknown role is rejected.
type SignUpDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Division string `json:"division,omitempty"`
	Section  string `json:"section,omitempty"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d SignUpDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.Role != "" {
		if _, ok := rbac.ParseRole(d.Role); !ok {
			return ValidationError{Msg: "unknown role: " + d.Role}
		}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
