// ABOUTME: Operator authentication and cookie sessions
// ABOUTME: Validates admin credentials with bcrypt and issues gorilla sessions
package auth

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName = "crm-session"
	emailKey    = "email"

	// Dev fallback when no password hash is configured
	devPassword = "admin123"
)

// Authenticator validates the single operator's credentials and manages the
// session cookie that carries their identity.
type Authenticator struct {
	adminEmail   string
	passwordHash string
	store        *sessions.CookieStore
}

// NewAuthenticator builds an authenticator from the environment:
// ADMIN_EMAIL, ADMIN_PASSWORD_HASH (bcrypt), SESSION_SECRET.
func NewAuthenticator() *Authenticator {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-session-secret-change-in-production"
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "abhi@lonestarscholars.com"
	}
	return &Authenticator{
		adminEmail:   adminEmail,
		passwordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		store:        sessions.NewCookieStore([]byte(secret)),
	}
}

// ValidateCredentials checks the operator's email and password. With no hash
// configured (or a placeholder), the dev password is accepted.
func (a *Authenticator) ValidateCredentials(email, password string) bool {
	if email != a.adminEmail {
		return false
	}
	if a.passwordHash == "" || strings.Contains(a.passwordHash, "placeholder") {
		return password == devPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

// Login stores the operator's email in the session cookie.
func (a *Authenticator) Login(w http.ResponseWriter, r *http.Request, email string) error {
	session, _ := a.store.Get(r, sessionName)
	session.Values[emailKey] = email
	session.Options.HttpOnly = true
	session.Options.MaxAge = 7 * 24 * 60 * 60
	return session.Save(r, w)
}

// Logout expires the session cookie.
func (a *Authenticator) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.Get(r, sessionName)
	session.Values[emailKey] = nil
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// SessionEmail returns the caller's identity, or "" when unauthenticated.
func (a *Authenticator) SessionEmail(r *http.Request) string {
	session, _ := a.store.Get(r, sessionName)
	email, _ := session.Values[emailKey].(string)
	return email
}
