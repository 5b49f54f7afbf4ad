package handler

import (
	"log/slog"
	"net/http"

	"unicatalog/internal/session"
	"unicatalog/internal/view"
)

type AuthHandler struct {
	rd     *view.Renderer
	logger *slog.Logger
}

func NewAuthHandler(rd *view.Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{rd: rd, logger: logger}
}

// Logout - ends the session. The cookie is cleared even when the stored
// session cannot be removed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())
	if _, err := r.Cookie(session.CookieName); err != nil || sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	}

	if err := sess.Destroy(r, w); err != nil {
		h.logger.Error("logout: destroy session", "session_id", sess.ID(), "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())
	user, _ := sess.User()

	return h.rd.Render(w, r, http.StatusOK, "dashboard", "Dashboard", map[string]any{
		"User":           user,
		"SessionStarted": sess.CreatedAt(),
	})
}
