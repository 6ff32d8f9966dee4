package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionUserKey = "user_id"

// Sessions keeps the logged-in user id in a signed cookie.
type Sessions struct {
	store sessions.Store
	name  string
}

func NewSessions(secret, name string) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store, name: name}
}

func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := s.store.Get(r, s.name)
	session.Values[sessionUserKey] = userID
	return session.Save(r, w)
}

func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, s.name)
	delete(session.Values, sessionUserKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// UserID returns the id stored by Login, or "" when there is no valid session.
func (s *Sessions) UserID(r *http.Request) string {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		return ""
	}
	id, _ := session.Values[sessionUserKey].(string)
	return id
}
