package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/transport"
)

type ServiceAPI interface {
	List(filter ListFilter) ([]UserResponse, error)
	GetByID(id string) (*UserResponse, error)
	Create(dto CreateUserDTO) (*UserResponse, error)
	Update(id string, dto UpdateUserDTO) (*UserResponse, error)
	Deactivate(id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Role:     r.URL.Query().Get("role"),
		Division: r.URL.Query().Get("division"),
	}
	if activeParam := r.URL.Query().Get("active"); activeParam != "" {
		active := activeParam == "true"
		filter.Active = &active
	}

	users, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("ListUsers: failed to list users", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: users, Total: len(users)})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	userResp, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("GetUser: failed to get user", "user_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	h.WriteJSON(w, http.StatusOK, userResp)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userResp, err := h.Service.Create(dto)
	if err != nil {
		var appErr *internal.AppError
		switch {
		case errors.Is(err, internal.ErrEmailTaken):
			h.WriteError(w, http.StatusConflict, "email already in use")
		case errors.As(err, &appErr) && appErr.Type == internal.ErrorTypeValidation:
			h.WriteError(w, http.StatusBadRequest, appErr.Message)
		default:
			h.Logger.Error("CreateUser: failed to create user", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, userResp)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userResp, err := h.Service.Update(id, dto)
	if err != nil {
		var appErr *internal.AppError
		switch {
		case errors.Is(err, internal.ErrUserNotFound):
			h.WriteError(w, http.StatusNotFound, "user not found")
		case errors.As(err, &appErr) && appErr.Type == internal.ErrorTypeValidation:
			h.WriteError(w, http.StatusBadRequest, appErr.Message)
		default:
			h.Logger.Error("UpdateUser: failed to update user", "user_id", id, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, userResp)
}

func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("DeactivateUser: failed to deactivate user", "user_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to deactivate user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
