package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

// Context keys for request-scoped values
type contextKey string

const actorIDKey contextKey = "actor_id"

const (
	sessionName     = "blogview_session"
	sessionActorKey = "actorId"
)

// SessionAuth resolves the current actor from a cookie session. How an
// actor id ends up in the session (the identity provider) is outside this
// service; everything downstream only sees "actor id or none".
type SessionAuth struct {
	store *sessions.CookieStore
}

// NewSessionAuth creates session-backed actor resolution with the given
// cookie signing secret
func NewSessionAuth(secret []byte) *SessionAuth {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuth{store: store}
}

// WithActor injects the session's actor id into the request context when
// present. Anonymous requests pass through untouched: reads are open to
// everyone.
func (m *SessionAuth) WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A stale or tampered cookie decodes as an anonymous request
		session, _ := m.store.Get(r, sessionName)
		if raw, ok := session.Values[sessionActorKey]; ok {
			if id, ok := raw.(int64); ok {
				r = r.WithContext(context.WithValue(r.Context(), actorIDKey, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireActor rejects anonymous requests with 401. Must run after
// WithActor in the middleware chain.
func (m *SessionAuth) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorID(r) == nil {
			writeAuthError(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorID returns the authenticated actor id, or nil for anonymous
func ActorID(r *http.Request) *int64 {
	if id, ok := r.Context().Value(actorIDKey).(int64); ok {
		return &id
	}
	return nil
}

// SetActor stores the actor id in the session cookie
func (m *SessionAuth) SetActor(w http.ResponseWriter, r *http.Request, actorID int64) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionActorKey] = actorID
	return session.Save(r, w)
}

// ClearActor drops the session cookie
func (m *SessionAuth) ClearActor(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode auth error: %v", err)
	}
}
