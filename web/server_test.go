// ABOUTME: Tests for the JSON API server
// ABOUTME: Exercises auth gating, contact CRUD, interactions, dashboard, and sync endpoints
package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonestarscholars/crm/auth"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

func setupServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("SESSION_SECRET", "test-secret")

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return NewServer(database, auth.NewAuthenticator(), nil), database
}

// login performs the login round trip and returns the session cookies.
func login(t *testing.T, handler http.Handler) []*http.Cookie {
	t.Helper()
	body := bytes.NewBufferString(`{"email":"owner@example.com","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func authedRequest(t *testing.T, handler http.Handler, cookies []*http.Cookie, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	server, _ := setupServer(t)
	handler := server.Handler()

	for _, path := range []string{"/api/contacts", "/api/dashboard", "/api/sync"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server, _ := setupServer(t)
	handler := server.Handler()

	body := bytes.NewBufferString(`{"email":"owner@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContactLifecycleOverHTTP(t *testing.T) {
	server, database := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	// Create
	w := authedRequest(t, handler, cookies, http.MethodPost, "/api/contacts",
		`{"primaryFirstName":"Maria","primaryLastName":"Garcia","leadStatus":"Contacted","nextFollowUpDate":"2026-09-10"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Contact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Maria", created.PrimaryFirstName)
	require.NotNil(t, created.NextFollowUpDate)

	// Update one field, verify the audit trail came along on the detail view
	w = authedRequest(t, handler, cookies, http.MethodPatch, "/api/contacts/"+created.ID.String(),
		`{"leadStatus":"Discovery Scheduled"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = authedRequest(t, handler, cookies, http.MethodGet, "/api/contacts/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		models.Contact
		Interactions []models.Interaction   `json:"interactions"`
		AuditLogs    []models.AuditLogEntry `json:"auditLogs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, models.StatusDiscoveryScheduled, detail.LeadStatus)
	require.Len(t, detail.AuditLogs, 2)
	// The update's author is the session identity
	assert.Equal(t, "owner@example.com", detail.AuditLogs[0].ChangedBy)

	// Delete
	w = authedRequest(t, handler, cookies, http.MethodDelete, "/api/contacts/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	got, err := db.GetContact(database, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetContactNotFound(t *testing.T) {
	server, _ := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	w := authedRequest(t, handler, cookies, http.MethodGet,
		"/api/contacts/1b671a64-40d5-491e-99b0-da01ff1f3341", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = authedRequest(t, handler, cookies, http.MethodGet, "/api/contacts/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateContactValidation(t *testing.T) {
	server, _ := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	// Missing name
	w := authedRequest(t, handler, cookies, http.MethodPost, "/api/contacts", `{"email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad date
	w = authedRequest(t, handler, cookies, http.MethodPost, "/api/contacts",
		`{"primaryFirstName":"A","primaryLastName":"B","nextFollowUpDate":"next tuesday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInteractionCascadesOverHTTP(t *testing.T) {
	server, database := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	w := authedRequest(t, handler, cookies, http.MethodPost, "/api/contacts",
		`{"primaryFirstName":"James","primaryLastName":"Wilson"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Contact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = authedRequest(t, handler, cookies, http.MethodPost, "/api/interactions",
		`{"contactId":"`+created.ID.String()+`","interactionType":"Call","summary":"Intro call","date":"2026-08-20"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var logged models.Interaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logged))
	assert.Equal(t, "owner@example.com", logged.LoggedBy)

	got, err := db.GetContact(database, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastContactDate)
}

func TestDashboardEndpoint(t *testing.T) {
	server, database := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	c := models.Contact{PrimaryFirstName: "A", PrimaryLastName: "B", LeadStatus: models.StatusWon}
	require.NoError(t, db.InsertContact(database, &c))

	w := authedRequest(t, handler, cookies, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalContacts  int     `json:"totalContacts"`
		ConversionRate float64 `json:"conversionRate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalContacts)
	assert.Equal(t, 100.0, stats.ConversionRate)
}

func TestSyncEndpointsWithoutMirror(t *testing.T) {
	server, _ := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	w := authedRequest(t, handler, cookies, http.MethodGet, "/api/sync", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		LastSync   *models.SyncRun `json:"lastSync"`
		Configured bool            `json:"configured"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Nil(t, status.LastSync)
	assert.False(t, status.Configured)

	w = authedRequest(t, handler, cookies, http.MethodPost, "/api/sync", "")
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not configured")
}

func TestExportEndpoint(t *testing.T) {
	server, database := setupServer(t)
	handler := server.Handler()
	cookies := login(t, handler)

	c := models.Contact{PrimaryFirstName: "Maria", PrimaryLastName: "Garcia"}
	require.NoError(t, db.InsertContact(database, &c))

	w := authedRequest(t, handler, cookies, http.MethodGet, "/api/contacts/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "contacts_")
	assert.Contains(t, w.Body.String(), "Maria")
}
