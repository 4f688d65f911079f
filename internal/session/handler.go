package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/rbac"
	"github.com/railtrace/railway-assets/internal/transport"
	"github.com/railtrace/railway-assets/pkg/logger"
)

// Handler exposes the session resolver over HTTP: login, signup, logout,
// token refresh and the current-session probe.
type Handler struct {
	*transport.BaseHandler
	Resolver *Resolver
	Tokens   TokenGenerator
}

func NewHandler(resolver *Resolver, tokens TokenGenerator) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Resolver:    resolver,
		Tokens:      tokens,
	}
}

type authResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) respondWithTokens(w http.ResponseWriter, status int, user *User) {
	accessToken, err := h.Tokens.GenerateAccessToken(user)
	if err != nil {
		h.Logger.Error("failed to generate access token", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	refreshToken, err := h.Tokens.GenerateRefreshToken(user)
	if err != nil {
		h.Logger.Error("failed to generate refresh token", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, status, authResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Resolver.Login(r.Context(), dto.Email, dto.Password)
	if err != nil {
		h.Logger.Warn("login failed", "email", dto.Email)
		if errors.Is(err, internal.ErrInvalidCredentials) {
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondWithTokens(w, http.StatusOK, user)
}

// SignUp handles POST /auth/signup. Beyond input validation it cannot fail:
// the resolver degrades to a local-only account on remote errors.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := h.Resolver.SignUp(r.Context(), dto)
	h.respondWithTokens(w, http.StatusCreated, user)
}

// Logout handles POST /auth/logout. It always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Resolver.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// RefreshToken handles POST /auth/refresh.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := h.Tokens.ValidateToken(dto.RefreshToken)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	role, _ := rbac.ParseRole(claims.Role)
	user := &User{ID: claims.UserID, Email: claims.Email, Role: role}

	h.respondWithTokens(w, http.StatusOK, user)
}

// GetSession handles GET /auth/session: the resolver's current session, with
// user null when nothing is resolved.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": h.Resolver.Current(),
	})
}

// AuthMiddleware validates the bearer token and injects the authenticated
// principal, with permissions derived from the role table, into the request
// context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Tokens.ValidateToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		role, ok := rbac.ParseRole(claims.Role)
		if !ok {
			h.Logger.Warn("token carries unknown role", "role", claims.Role, "user_id", claims.UserID)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		authUser := &internal.AuthUser{
			ID:          claims.UserID,
			Email:       claims.Email,
			Role:        role.String(),
			Permissions: rbac.PermissionsForRole(role),
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), authUser)))
	})
}
