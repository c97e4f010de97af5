package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/service"
)

type CollectionHandlers struct {
	collections service.CollectionService
	dashboard   service.DashboardService
}

func NewCollectionHandlers(collections service.CollectionService, dashboard service.DashboardService) *CollectionHandlers {
	return &CollectionHandlers{collections: collections, dashboard: dashboard}
}

// List filters by optional status, due_date (whole calendar day), and
// borrower_id query parameters.
func (h *CollectionHandlers) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.ListCollectionsInput
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := domain.CollectionStatus(v)
		if status != domain.CollectionStatusPending && status != domain.CollectionStatusReceived {
			respondError(w, http.StatusBadRequest, "status must be pending or received")
			return
		}
		in.Status = &status
	}
	if v := q.Get("due_date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		in.DueOn = &day
	}
	if v := q.Get("borrower_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid borrower_id")
			return
		}
		in.BorrowerID = &id
	}

	collections, err := h.collections.ListCollections(r.Context(), ownerID, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondList(w, collections, len(collections))
}

func (h *CollectionHandlers) MarkCollected(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid collection id")
		return
	}

	var in service.MarkCollectedInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	collection, err := h.collections.MarkCollected(r.Context(), ownerID, id, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "collection marked as received", collection)
}

func (h *CollectionHandlers) MarkPending(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid collection id")
		return
	}

	collection, err := h.collections.MarkPending(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "collection reverted to pending", collection)
}

func (h *CollectionHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	summary, err := h.dashboard.GetSummary(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "", summary)
}
