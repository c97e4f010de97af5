package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"lendledger-backend/internal/service"
)

type BorrowerHandlers struct {
	borrowers service.BorrowerService
}

func NewBorrowerHandlers(borrowers service.BorrowerService) *BorrowerHandlers {
	return &BorrowerHandlers{borrowers: borrowers}
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

func (h *BorrowerHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.CreateBorrowerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	borrower, err := h.borrowers.CreateBorrower(r.Context(), ownerID, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, "borrower created", borrower)
}

func (h *BorrowerHandlers) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	borrowers, err := h.borrowers.ListBorrowers(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondList(w, borrowers, len(borrowers))
}

func (h *BorrowerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}

	borrower, err := h.borrowers.GetBorrower(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "", borrower)
}

func (h *BorrowerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}

	var in service.UpdateBorrowerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	borrower, err := h.borrowers.UpdateBorrower(r.Context(), ownerID, id, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "borrower updated", borrower)
}

func (h *BorrowerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}

	if err := h.borrowers.DeleteBorrower(r.Context(), ownerID, id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "borrower deleted", nil)
}

func (h *BorrowerHandlers) AddLoan(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}

	var in service.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	borrower, loan, err := h.borrowers.AddLoan(r.Context(), ownerID, id, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, "loan added", map[string]any{
		"borrower": borrower,
		"loan":     loan,
	})
}

func (h *BorrowerHandlers) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	check, err := h.borrowers.CheckDuplicate(r.Context(), ownerID, name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "", check)
}

func (h *BorrowerHandlers) ListCollections(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}

	collections, err := h.borrowers.ListBorrowerCollections(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondList(w, collections, len(collections))
}
