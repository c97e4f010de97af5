package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"lendledger-backend/internal/security"
)

// Handlers bundles the route handlers the router wires up.
type Handlers struct {
	Auth        *AuthHandlers
	Borrowers   *BorrowerHandlers
	Collections *CollectionHandlers
	Admin       *AdminHandlers
}

// NewRouter builds the full route table. Auth routes and the health check are
// public; everything else requires a Bearer token, and /api/admin additionally
// requires the admin role.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LogRequests)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)

	authenticated := api.NewRoute().Subrouter()
	authenticated.Use(Authenticate(tokens))

	borrowers := authenticated.PathPrefix("/borrowers").Subrouter()
	borrowers.HandleFunc("", h.Borrowers.List).Methods(http.MethodGet)
	borrowers.HandleFunc("", h.Borrowers.Create).Methods(http.MethodPost)
	borrowers.HandleFunc("/check-duplicate", h.Borrowers.CheckDuplicate).Methods(http.MethodGet)
	borrowers.HandleFunc("/{id}", h.Borrowers.Get).Methods(http.MethodGet)
	borrowers.HandleFunc("/{id}", h.Borrowers.Update).Methods(http.MethodPut)
	borrowers.HandleFunc("/{id}", h.Borrowers.Delete).Methods(http.MethodDelete)
	borrowers.HandleFunc("/{id}/loans", h.Borrowers.AddLoan).Methods(http.MethodPost)
	borrowers.HandleFunc("/{id}/collections", h.Borrowers.ListCollections).Methods(http.MethodGet)

	collections := authenticated.PathPrefix("/collections").Subrouter()
	collections.HandleFunc("", h.Collections.List).Methods(http.MethodGet)
	collections.HandleFunc("/dashboard", h.Collections.Dashboard).Methods(http.MethodGet)
	collections.HandleFunc("/{id}/mark-collected", h.Collections.MarkCollected).Methods(http.MethodPut)
	collections.HandleFunc("/{id}/mark-pending", h.Collections.MarkPending).Methods(http.MethodPut)

	admin := authenticated.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)
	admin.HandleFunc("/users", h.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/stats", h.Admin.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/status", h.Admin.SetUserStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}/activity", h.Admin.UserActivity).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, "ok", map[string]string{"status": "healthy"})
}
