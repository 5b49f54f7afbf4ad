package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"unicatalog/internal/entity"

	"github.com/gorilla/sessions"
)

const CookieName = "app-session"

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

var flashKinds = []string{FlashSuccess, FlashError, FlashWarning, FlashInfo}

const (
	userKey    = "user"
	createdKey = "created_at"
)

func init() {
	gob.Register(entity.SessionUser{})
	gob.Register([]interface{}{})
}

// Flashes holds one-shot messages grouped by kind.
type Flashes map[string][]string

func (f Flashes) Empty() bool {
	for _, msgs := range f {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// Session is the per-request view of the visitor's session. Handlers get it
// from the request context; nothing else holds session state.
type Session struct {
	raw *sessions.Session
}

func Wrap(raw *sessions.Session) *Session {
	return &Session{raw: raw}
}

func (s *Session) ID() string {
	return s.raw.ID
}

func (s *Session) IsNew() bool {
	return s.raw.IsNew
}

// Empty reports whether the session holds no values at all.
func (s *Session) Empty() bool {
	return len(s.raw.Values) == 0
}

// CreatedAt is the time of the first save, zero for a session never saved.
func (s *Session) CreatedAt() time.Time {
	if unix, ok := s.raw.Values[createdKey].(int64); ok {
		return time.Unix(unix, 0)
	}
	return time.Time{}
}

func (s *Session) User() (entity.SessionUser, bool) {
	u, ok := s.raw.Values[userKey].(entity.SessionUser)
	if !ok || u.ID == 0 {
		return entity.SessionUser{}, false
	}
	return u, true
}

func (s *Session) SetUser(u entity.SessionUser) {
	s.raw.Values[userKey] = u
}

func (s *Session) ClearUser() {
	delete(s.raw.Values, userKey)
}

func (s *Session) AddFlash(kind, message string) {
	s.raw.AddFlash(message, flashKey(kind))
}

// Flashes returns and removes every pending flash message. The removal is
// persisted on the next Save.
func (s *Session) Flashes() Flashes {
	out := Flashes{}
	for _, kind := range flashKinds {
		for _, v := range s.raw.Flashes(flashKey(kind)) {
			if msg, ok := v.(string); ok {
				out[kind] = append(out[kind], msg)
			}
		}
	}
	return out
}

func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	if _, ok := s.raw.Values[createdKey]; !ok {
		s.raw.Values[createdKey] = time.Now().Unix()
	}
	return s.raw.Save(r, w)
}

// Destroy expires the cookie and removes the stored session. The cookie is
// cleared even when an error is returned.
func (s *Session) Destroy(r *http.Request, w http.ResponseWriter) error {
	for k := range s.raw.Values {
		delete(s.raw.Values, k)
	}
	s.raw.Options.MaxAge = -1
	return s.raw.Save(r, w)
}

func flashKey(kind string) string {
	return "_flash_" + kind
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by the session middleware, or
// nil when the request never passed through it.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
