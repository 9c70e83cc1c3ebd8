// Package settings serves the signed-in user's own profile page.
package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/users"
	"github.com/bonevet/inventory/internal/view"
)

// Handler serves the /settings pages.
type Handler struct {
	logger    *slog.Logger
	users     *users.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, usersService *users.Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, users: usersService, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showProfile)
	r.Post("/profile", h.updateProfile)
	r.Post("/password", h.changePassword)
}

type formErrors map[string]string

type profileForm struct {
	Name string `validate:"required,min=2"`
}

type passwordForm struct {
	Current  string `validate:"required"`
	Password string `validate:"required,min=8"`
}

func (h *Handler) showProfile(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	h.render(w, r, map[string]any{
		"Form": profileForm{Name: shared.DisplayName(sess)}, "Errors": formErrors{},
	}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := profileForm{Name: r.PostFormValue("name")}
	errs := formErrors{}
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = fieldErr.Error()
		}
	}
	if len(errs) > 0 {
		h.render(w, r, map[string]any{"Form": form, "Errors": errs}, http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	userID := shared.ActorID(sess)
	if err := h.users.Rename(r.Context(), userID, form.Name); err != nil {
		h.logger.Error("rename user failed", slog.Any("error", err), slog.Int64("id", userID))
		errs["general"] = shared.UserSafeMessage(err)
		h.render(w, r, map[string]any{"Form": form, "Errors": errs}, http.StatusInternalServerError)
		return
	}
	// Keep the header greeting in step without a fresh lookup.
	if sess != nil {
		sess.Set(shared.SessionUserNameKey, form.Name)
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Profile updated"})
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := passwordForm{
		Current:  r.PostFormValue("current"),
		Password: r.PostFormValue("password"),
	}
	errs := formErrors{}
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = fieldErr.Error()
		}
	}
	sess := shared.SessionFromContext(r.Context())
	if len(errs) == 0 {
		userID := shared.ActorID(sess)
		err := h.users.ChangePassword(r.Context(), userID, form.Current, form.Password)
		switch {
		case err == nil:
		case errors.Is(err, shared.ErrInvalidCredentials):
			errs["Current"] = "Current password is incorrect"
		default:
			h.logger.Error("change password failed", slog.Any("error", err), slog.Int64("id", userID))
			errs["general"] = shared.UserSafeMessage(err)
		}
	}
	if len(errs) > 0 {
		h.render(w, r, map[string]any{
			"Form": profileForm{Name: shared.DisplayName(sess)}, "Errors": errs,
		}, http.StatusBadRequest)
		return
	}
	if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Password updated"})
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.PageData(r.URL.Path, shared.DisplayName(sess), csrfToken, flash, data)
	w.WriteHeader(status)
	if err := h.templates.Render(w, "pages/settings/profile.html", viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}
