package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"unicatalog/internal/password"
	"unicatalog/internal/policy"
	"unicatalog/internal/repository"
	"unicatalog/internal/session"
	"unicatalog/internal/validation"
	"unicatalog/internal/view"
)

type RegistrationHandler struct {
	users  UserStore
	rd     *view.Renderer
	logger *slog.Logger
}

func NewRegistrationHandler(users UserStore, rd *view.Renderer, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		users:  users,
		rd:     rd,
		logger: logger,
	}
}

// userRow is one line of the user list, without the password.
type userRow struct {
	ID        int
	Name      string
	Email     string
	RoleName  string
	CreatedAt time.Time
	CanEdit   bool
	CanDelete bool
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) error {
	return h.rd.Render(w, r, http.StatusOK, "register", "User Registration", nil)
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return view.BadRequest("Could not read the form")
	}

	sess := session.FromContext(r.Context())
	form := validation.ParseRegistration(r)

	if msgs := validation.Check(form); len(msgs) > 0 {
		for _, msg := range msgs {
			sess.AddFlash(session.FlashError, msg)
		}
		h.rd.Redirect(w, r, "/register")
		return nil
	}

	exists, err := h.users.EmailExists(r.Context(), form.Email)
	if err != nil {
		h.logger.Error("registration: check email", "error", err)
		sess.AddFlash(session.FlashError, msgRegisterFailed)
		h.rd.Redirect(w, r, "/register")
		return nil
	}
	if exists {
		sess.AddFlash(session.FlashWarning, msgAccountExists)
		h.rd.Redirect(w, r, "/register")
		return nil
	}

	hash, err := password.Hash(form.Password)
	if err != nil {
		h.logger.Error("registration: hash password", "error", err)
		sess.AddFlash(session.FlashError, msgRegisterFailed)
		h.rd.Redirect(w, r, "/register")
		return nil
	}

	user, err := h.users.Create(r.Context(), form.Name, form.Email, hash)
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		// lost a race with a concurrent registration
		sess.AddFlash(session.FlashWarning, msgAccountExists)
		h.rd.Redirect(w, r, "/register")
		return nil
	case err != nil:
		h.logger.Error("registration: save user", "error", err)
		sess.AddFlash(session.FlashError, msgRegisterFailed)
		h.rd.Redirect(w, r, "/register")
		return nil
	}

	h.logger.Info("user registered", "user_id", user.ID)
	sess.AddFlash(session.FlashSuccess, msgRegistered)
	h.rd.Redirect(w, r, "/login")
	return nil
}

// ListUsers shows every account. Loading errors are logged and an empty
// list is shown instead.
func (h *RegistrationHandler) ListUsers(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())
	actor, _ := sess.User()

	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("list users", "error", err)
		sess.AddFlash(session.FlashError, msgUsersUnavailable)
		users = nil
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			RoleName:  u.RoleName,
			CreatedAt: u.CreatedAt,
			CanEdit:   policy.Can(actor, policy.EditAccount, u.ID),
			CanDelete: policy.Can(actor, policy.DeleteAccount, u.ID),
		})
	}

	return h.rd.Render(w, r, http.StatusOK, "users", "Registered Users", map[string]any{"Users": rows})
}

func (h *RegistrationHandler) EditAccountPage(w http.ResponseWriter, r *http.Request) error {
	targetID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return view.NotFound("User %s not found", r.PathValue("id"))
	}

	sess := session.FromContext(r.Context())
	actor, _ := sess.User()

	if !policy.Can(actor, policy.EditAccount, targetID) {
		sess.AddFlash(session.FlashError, msgPermissionDenied)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}

	target, err := h.users.GetByID(r.Context(), targetID)
	if err != nil {
		h.flashLookupError(sess, "edit account page", targetID, err)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}

	return h.rd.Render(w, r, http.StatusOK, "account-edit", "Edit Account", map[string]any{"Account": target})
}

// EditAccount updates name and email. The signed-in user's session is
// refreshed when they edit their own account.
func (h *RegistrationHandler) EditAccount(w http.ResponseWriter, r *http.Request) error {
	targetID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return view.NotFound("User %s not found", r.PathValue("id"))
	}

	sess := session.FromContext(r.Context())
	actor, _ := sess.User()

	if !policy.Can(actor, policy.EditAccount, targetID) {
		h.logger.Warn("edit denied", "actor_id", actor.ID, "target_id", targetID)
		sess.AddFlash(session.FlashError, msgPermissionDenied)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return view.BadRequest("Could not read the form")
	}

	editURL := fmt.Sprintf("/register/%d/edit", targetID)
	form := validation.ParseAccount(r)
	if msgs := validation.Check(form); len(msgs) > 0 {
		for _, msg := range msgs {
			sess.AddFlash(session.FlashError, msg)
		}
		h.rd.Redirect(w, r, editURL)
		return nil
	}

	if _, err := h.users.GetByID(r.Context(), targetID); err != nil {
		h.flashLookupError(sess, "edit account", targetID, err)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}

	taken, err := h.users.EmailTakenByOther(r.Context(), form.Email, targetID)
	if err != nil {
		h.logger.Error("edit account: check email", "target_id", targetID, "error", err)
		sess.AddFlash(session.FlashError, msgUpdateFailed)
		h.rd.Redirect(w, r, editURL)
		return nil
	}
	if taken {
		sess.AddFlash(session.FlashWarning, msgEmailInUse)
		h.rd.Redirect(w, r, editURL)
		return nil
	}

	updated, err := h.users.UpdateAccount(r.Context(), targetID, form.Name, form.Email)
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		sess.AddFlash(session.FlashWarning, msgEmailInUse)
		h.rd.Redirect(w, r, editURL)
		return nil
	case err != nil:
		h.flashLookupError(sess, "edit account: update", targetID, err)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}

	if actor.ID == targetID {
		sess.SetUser(updated.Public())
	}

	sess.AddFlash(session.FlashSuccess, msgAccountUpdated)
	h.rd.Redirect(w, r, "/register/list")
	return nil
}

// DeleteAccount is admin only and refuses to delete the admin's own account.
func (h *RegistrationHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) error {
	targetID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return view.NotFound("User %s not found", r.PathValue("id"))
	}

	sess := session.FromContext(r.Context())
	actor, _ := sess.User()

	if actor.ID == targetID {
		sess.AddFlash(session.FlashError, msgSelfDelete)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}
	if !policy.Can(actor, policy.DeleteAccount, targetID) {
		h.logger.Warn("delete denied", "actor_id", actor.ID, "target_id", targetID)
		sess.AddFlash(session.FlashError, msgPermissionDenied)
		h.rd.Redirect(w, r, "/register/list")
		return nil
	}

	err = h.users.Delete(r.Context(), targetID)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		sess.AddFlash(session.FlashError, msgUserNotFound)
	case err != nil:
		h.logger.Error("delete account", "target_id", targetID, "error", err)
		sess.AddFlash(session.FlashError, msgDeleteFailed)
	default:
		h.logger.Info("user deleted", "actor_id", actor.ID, "target_id", targetID)
		sess.AddFlash(session.FlashSuccess, msgUserDeleted)
	}

	h.rd.Redirect(w, r, "/register/list")
	return nil
}

func (h *RegistrationHandler) flashLookupError(sess *session.Session, op string, targetID int, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		sess.AddFlash(session.FlashError, msgUserNotFound)
		return
	}
	h.logger.Error(op, "target_id", targetID, "error", err)
	sess.AddFlash(session.FlashError, msgUpdateFailed)
}
