// ABOUTME: JSON API server for the CRM
// ABOUTME: Wires routes for contacts, interactions, dashboard, sync, and auth
package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/lonestarscholars/crm/auth"
	"github.com/lonestarscholars/crm/crm"
	"github.com/lonestarscholars/crm/sync"
)

type Server struct {
	db     *sql.DB
	auth   *auth.Authenticator
	syncer *sync.Syncer
}

// NewServer builds the API server. syncer may be nil when the mirror is not
// configured; the sync endpoints then report the configuration error.
func NewServer(database *sql.DB, authenticator *auth.Authenticator, syncer *sync.Syncer) *Server {
	return &Server{
		db:     database,
		auth:   authenticator,
		syncer: syncer,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.HandleFunc("GET /api/contacts", s.requireSession(s.handleListContacts))
	mux.HandleFunc("POST /api/contacts", s.requireSession(s.handleCreateContact))
	mux.HandleFunc("GET /api/contacts/export", s.requireSession(s.handleExportContacts))
	mux.HandleFunc("GET /api/contacts/{id}", s.requireSession(s.handleGetContact))
	mux.HandleFunc("PATCH /api/contacts/{id}", s.requireSession(s.handleUpdateContact))
	mux.HandleFunc("DELETE /api/contacts/{id}", s.requireSession(s.handleDeleteContact))

	mux.HandleFunc("GET /api/interactions", s.requireSession(s.handleListInteractions))
	mux.HandleFunc("POST /api/interactions", s.requireSession(s.handleCreateInteraction))

	mux.HandleFunc("GET /api/dashboard", s.requireSession(s.handleDashboard))

	mux.HandleFunc("GET /api/sync", s.requireSession(s.handleSyncStatus))
	mux.HandleFunc("POST /api/sync", s.requireSession(s.handleRunSync))

	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting API server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// sessionHandler receives the authenticated operator's email.
type sessionHandler func(w http.ResponseWriter, r *http.Request, email string)

func (s *Server) requireSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := s.auth.SessionEmail(r)
		if email == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, email)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeOperationError maps engine error kinds onto HTTP statuses.
func writeOperationError(w http.ResponseWriter, err error) {
	var vErr *crm.ValidationError
	switch {
	case errors.Is(err, crm.ErrNotFound):
		writeError(w, http.StatusNotFound, "Contact not found")
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if !s.auth.ValidateCredentials(req.Email, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := s.auth.Login(w, r, req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "email": req.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(w, r); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
