package inspection

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/transport"
)

type ServiceAPI interface {
	Record(inspectorID, inspectorName string, dto RecordInspectionDTO) (*Inspection, error)
	List(filter ListFilter, userPermissions []string, userID string) ([]*Inspection, error)
	GetByID(id int64) (*Inspection, error)
	Approve(inspectionID int64, approverID string, userPermissions []string) error
	Reject(inspectionID int64, approverID, reason string, userPermissions []string) error
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

func (h *Handler) RecordInspection(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto RecordInspectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inspection, err := h.Service.Record(authUser.ID, authUser.Email, dto)
	if err != nil {
		var validationErr ValidationError
		if errors.As(err, &validationErr) {
			h.WriteError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		h.Logger.Error("RecordInspection: failed to record inspection", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to record inspection")
		return
	}

	h.WriteJSON(w, http.StatusCreated, inspection)
}

func (h *Handler) ListInspections(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{
		Status:   r.URL.Query().Get("status"),
		Division: r.URL.Query().Get("division"),
	}
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil {
			filter.Limit = limit
		}
	}
	if offsetParam := r.URL.Query().Get("offset"); offsetParam != "" {
		if offset, err := strconv.Atoi(offsetParam); err == nil {
			filter.Offset = offset
		}
	}

	inspections, err := h.Service.List(filter, authUser.Permissions, authUser.ID)
	if err != nil {
		h.Logger.Error("ListInspections: failed to list inspections", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list inspections")
		return
	}

	h.WriteJSON(w, http.StatusOK, InspectionsResponse{Inspections: inspections, Total: len(inspections)})
}

func (h *Handler) GetInspection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	inspection, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrInspectionNotFound) {
			h.WriteError(w, http.StatusNotFound, "inspection not found")
			return
		}
		h.Logger.Error("GetInspection: failed to get inspection", "inspection_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get inspection")
		return
	}

	h.WriteJSON(w, http.StatusOK, inspection)
}

func (h *Handler) ApproveInspection(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	if err := h.Service.Approve(id, authUser.ID, authUser.Permissions); err != nil {
		switch {
		case errors.Is(err, ErrInspectionNotFound):
			h.WriteError(w, http.StatusNotFound, "inspection not found")
		case errors.Is(err, ErrInvalidInspectionStatus):
			h.WriteError(w, http.StatusBadRequest, "inspection cannot be approved in current status")
		case errors.Is(err, ErrUnauthorizedAccess):
			h.WriteError(w, http.StatusForbidden, "approval permission required")
		default:
			h.Logger.Error("ApproveInspection: failed to approve", "inspection_id", id, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to approve inspection")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "inspection approved"})
}

func (h *Handler) RejectInspection(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	var dto RejectInspectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Reject(id, authUser.ID, dto.Reason, authUser.Permissions); err != nil {
		switch {
		case errors.Is(err, ErrInspectionNotFound):
			h.WriteError(w, http.StatusNotFound, "inspection not found")
		case errors.Is(err, ErrInvalidInspectionStatus):
			h.WriteError(w, http.StatusBadRequest, "inspection cannot be rejected in current status")
		case errors.Is(err, ErrUnauthorizedAccess):
			h.WriteError(w, http.StatusForbidden, "approval permission required")
		default:
			h.Logger.Error("RejectInspection: failed to reject", "inspection_id", id, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to reject inspection")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "inspection rejected"})
}
