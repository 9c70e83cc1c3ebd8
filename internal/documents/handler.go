package documents

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/view"
)

// Handler serves the /documents pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers document routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listDocuments)
	r.Get("/new", h.showRegisterForm)
	r.Post("/", h.registerDocument)
	r.Post("/{id}/download", h.recordDownload)
}

type formErrors map[string]string

type documentForm struct {
	Title    string `validate:"required,min=2"`
	Kind     string
	Entity   string
	EntityID string
	Size     int64 `validate:"gte=0"`
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	docs, pagination, err := h.service.List(r.Context(), ListFilter{Page: page})
	if err != nil {
		h.logger.Error("list documents failed", slog.Any("error", err))
		h.render(w, r, "pages/documents/list.html", map[string]any{
			"Errors": formErrors{"general": shared.UserSafeMessage(err)},
		}, http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/documents/list.html", map[string]any{
		"Documents": docs, "Pagination": pagination.WithQuery(r.URL.Query()), "Errors": formErrors{},
	}, http.StatusOK)
}

func (h *Handler) showRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/documents/form.html", map[string]any{
		"Form": documentForm{}, "Kinds": Kinds, "Errors": formErrors{},
	}, http.StatusOK)
}

func (h *Handler) registerDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	size, _ := strconv.ParseInt(r.PostFormValue("size"), 10, 64)
	form := documentForm{
		Title:    r.PostFormValue("title"),
		Kind:     r.PostFormValue("kind"),
		Entity:   r.PostFormValue("entity"),
		EntityID: r.PostFormValue("entity_id"),
		Size:     size,
	}
	errs := formErrors{}
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = fieldErr.Error()
		}
	}
	if len(errs) > 0 {
		h.render(w, r, "pages/documents/form.html", map[string]any{
			"Form": form, "Kinds": Kinds, "Errors": errs,
		}, http.StatusBadRequest)
		return
	}

	actorID := shared.ActorID(shared.SessionFromContext(r.Context()))
	_, err := h.service.Register(r.Context(), NewDocument{
		Title:     form.Title,
		Kind:      DocumentKind(form.Kind),
		Entity:    form.Entity,
		EntityID:  form.EntityID,
		SizeBytes: form.Size,
		ActorID:   actorID,
	})
	if err != nil {
		h.logger.Error("register document failed", slog.Any("error", err))
		errs["general"] = shared.UserSafeMessage(err)
		h.render(w, r, "pages/documents/form.html", map[string]any{
			"Form": form, "Kinds": Kinds, "Errors": errs,
		}, http.StatusInternalServerError)
		return
	}
	h.redirectWithFlash(w, r, "/documents", "success", "Document registered")
}

func (h *Handler) recordDownload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.service.RecordDownload(r.Context(), id); err != nil {
		h.logger.Error("record download failed", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/documents", "error", shared.UserSafeMessage(err))
		return
	}
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.PageData(r.URL.Path, shared.DisplayName(sess), csrfToken, flash, data)
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
