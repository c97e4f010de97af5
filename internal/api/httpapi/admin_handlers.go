package httpapi

import (
	"encoding/json"
	"net/http"

	"lendledger-backend/internal/service"
)

type AdminHandlers struct {
	admin service.AdminService
}

func NewAdminHandlers(admin service.AdminService) *AdminHandlers {
	return &AdminHandlers{admin: admin}
}

func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondList(w, users, len(users))
}

func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "", stats)
}

func (h *AdminHandlers) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	targetID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		respondError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	user, err := h.admin.SetUserActive(r.Context(), adminID, targetID, *req.IsActive)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "user status updated", user)
}

func (h *AdminHandlers) UserActivity(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	activity, err := h.admin.GetUserActivity(r.Context(), targetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "", activity)
}
