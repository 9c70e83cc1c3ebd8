package inventory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/view"
)

// LoanHistoryPort supplies past loans for the item detail page.
type LoanHistoryPort interface {
	HistoryForItem(ctx context.Context, itemID int64) ([]ItemLoan, error)
}

// Handler serves the /inventory pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	loans     LoanHistoryPort
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, loans LoanHistoryPort, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, loans: loans, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listItems)
	r.Get("/new", h.showCreateForm)
	r.Post("/", h.createItem)
	r.Get("/{id}", h.showItem)
	r.Post("/{id}/adjust", h.adjustItem)
}

type formErrors map[string]string

type itemForm struct {
	Code     string `validate:"required,min=2,max=32"`
	Name     string `validate:"required,min=2"`
	Category string
	Qty      int `validate:"gte=1"`
	Location string
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	items, pagination, err := h.service.List(r.Context(), ListFilter{Query: query, Page: page})
	if err != nil {
		h.logger.Error("list items failed", slog.Any("error", err))
		h.render(w, r, "pages/inventory/list.html", map[string]any{
			"Query": query, "Errors": formErrors{"general": shared.UserSafeMessage(err)},
		}, http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/inventory/list.html", map[string]any{
		"Items": items, "Query": query, "Pagination": pagination.WithQuery(r.URL.Query()), "Errors": formErrors{},
	}, http.StatusOK)
}

func (h *Handler) showCreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/inventory/form.html", map[string]any{"Form": itemForm{Qty: 1}, "Errors": formErrors{}}, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	qty, _ := strconv.Atoi(r.PostFormValue("qty"))
	form := itemForm{
		Code:     r.PostFormValue("code"),
		Name:     r.PostFormValue("name"),
		Category: r.PostFormValue("category"),
		Qty:      qty,
		Location: r.PostFormValue("location"),
	}
	errs := formErrors{}
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = fieldErr.Error()
		}
	}
	if len(errs) > 0 {
		h.render(w, r, "pages/inventory/form.html", map[string]any{"Form": form, "Errors": errs}, http.StatusBadRequest)
		return
	}

	actorID := shared.ActorID(shared.SessionFromContext(r.Context()))
	id, err := h.service.Create(r.Context(), actorID, NewItem{
		Code: form.Code, Name: form.Name, Category: form.Category, Qty: form.Qty, Location: form.Location,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			errs["Code"] = "This code is already in use"
			h.render(w, r, "pages/inventory/form.html", map[string]any{"Form": form, "Errors": errs}, http.StatusBadRequest)
			return
		}
		h.logger.Error("create item failed", slog.Any("error", err))
		errs["general"] = shared.UserSafeMessage(err)
		h.render(w, r, "pages/inventory/form.html", map[string]any{"Form": form, "Errors": errs}, http.StatusInternalServerError)
		return
	}
	h.redirectWithFlash(w, r, "/inventory/"+strconv.FormatInt(id, 10), "success", "Item created")
}

func (h *Handler) showItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	item, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("load item failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var history []ItemLoan
	if h.loans != nil {
		if history, err = h.loans.HistoryForItem(r.Context(), id); err != nil {
			h.logger.Warn("load loan history", slog.Any("error", err), slog.Int64("id", id))
		}
	}

	h.render(w, r, "pages/inventory/detail.html", map[string]any{
		"Item": item, "Loans": history, "Statuses": Statuses,
	}, http.StatusOK)
}

func (h *Handler) adjustItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	qty, _ := strconv.Atoi(r.PostFormValue("qty"))
	status := ItemStatus(r.PostFormValue("status"))

	actorID := shared.ActorID(shared.SessionFromContext(r.Context()))
	if err := h.service.Adjust(r.Context(), actorID, id, status, qty); err != nil {
		h.logger.Error("adjust item failed", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/inventory/"+strconv.FormatInt(id, 10), "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/inventory/"+strconv.FormatInt(id, 10), "success", "Item updated")
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
