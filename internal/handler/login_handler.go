package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"unicatalog/internal/password"
	"unicatalog/internal/repository"
	"unicatalog/internal/session"
	"unicatalog/internal/validation"
	"unicatalog/internal/view"
)

type LoginHandler struct {
	users  UserStore
	rd     *view.Renderer
	logger *slog.Logger
}

func NewLoginHandler(users UserStore, rd *view.Renderer, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		users:  users,
		rd:     rd,
		logger: logger,
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) error {
	if sess := session.FromContext(r.Context()); sess != nil {
		if _, ok := sess.User(); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return nil
		}
	}

	return h.rd.Render(w, r, http.StatusOK, "login", "Login", nil)
}

// Login checks the credentials. Unknown email and wrong password get the
// same message.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return view.BadRequest("Could not read the form")
	}

	sess := session.FromContext(r.Context())
	form := validation.ParseLogin(r)

	if msgs := validation.Check(form); len(msgs) > 0 {
		for _, msg := range msgs {
			sess.AddFlash(session.FlashError, msg)
		}
		h.rd.Redirect(w, r, "/login")
		return nil
	}

	user, err := h.users.FindByEmail(r.Context(), form.Email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		password.Verify(dummyHash, form.Password)
		sess.AddFlash(session.FlashError, msgInvalidCredentials)
		h.rd.Redirect(w, r, "/login")
		return nil
	case err != nil:
		h.logger.Error("login: find user", "error", err)
		sess.AddFlash(session.FlashError, msgLoginUnavailable)
		h.rd.Redirect(w, r, "/login")
		return nil
	}

	if !password.Verify(user.PasswordHash, form.Password) {
		h.logger.Info("login failed", "user_id", user.ID)
		sess.AddFlash(session.FlashError, msgInvalidCredentials)
		h.rd.Redirect(w, r, "/login")
		return nil
	}

	sess.SetUser(user.Public())
	sess.AddFlash(session.FlashSuccess, fmt.Sprintf("Welcome, %s!", user.Name))
	h.logger.Info("user logged in", "user_id", user.ID)
	h.rd.Redirect(w, r, "/dashboard")
	return nil
}

// dummyHash keeps the unknown-email path as slow as a real password check.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3rL3M0aHl5lU.9sKCPZ0Zxe"
