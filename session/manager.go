package session

import (
	"context"
	"encoding/gob"
	"errors"
	"log/slog"
	"net/http"

	"Userdeck/config"
	"Userdeck/models"
	"Userdeck/store"

	"github.com/gorilla/sessions"
)

const sessionName = "userdeck-session"

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Category string
	Message  string
}

func init() {
	gob.Register(FlashMessage{})
}

type contextKey struct{}

var userKey contextKey

// Manager binds logins to opaque session cookies and resolves them back
// to users on later requests. It holds only a transient reference (the
// user id); the store remains the single owner of user records.
type Manager struct {
	cookies *sessions.CookieStore
	users   store.Users
}

func NewManager(cfg *config.Config, users store.Users) *Manager {
	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{cookies: cookies, users: users}
}

// Establish binds a fresh session to the given user. Any values carried
// by a prior session on this client are discarded, never inherited.
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, _ := m.cookies.Get(r, sessionName)
	session.Values = make(map[interface{}]interface{})
	session.Values["user_id"] = user.SubjectID()
	return session.Save(r, w)
}

// Current resolves the request's cookie to a user. A missing, malformed,
// or stale cookie means "not authenticated", never a hard error.
func (m *Manager) Current(r *http.Request) *models.User {
	session, err := m.cookies.Get(r, sessionName)
	if err != nil {
		return nil
	}

	id, ok := session.Values["user_id"].(int64)
	if !ok {
		return nil
	}

	user, err := m.users.FindByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("Failed to resolve session user", "user_id", id, "error", err)
		}
		return nil
	}
	if !user.Active() {
		return nil
	}
	return user
}

// Terminate invalidates the current session. The old cookie never
// resolves again; a later login issues a fresh one.
func (m *Manager) Terminate(w http.ResponseWriter, r *http.Request) {
	session, err := m.cookies.Get(r, sessionName)
	if err != nil && session == nil {
		return
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
}

// Flash queues a one-shot notice for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	session, _ := m.cookies.Get(r, sessionName)
	session.AddFlash(FlashMessage{Category: category, Message: message})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save flash", "error", err)
	}
}

// Flashes drains and returns the queued notices.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	session, _ := m.cookies.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(r, w); err != nil {
			slog.Error("Failed to drain flashes", "error", err)
		}
	}

	flashes := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(FlashMessage); ok {
			flashes = append(flashes, msg)
		}
	}
	return flashes
}

// UserFrom returns the authenticated user placed in the context by
// RequireAuth, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
