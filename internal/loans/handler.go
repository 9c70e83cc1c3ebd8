package loans

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bonevet/inventory/internal/inventory"
	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/view"
)

// AvailableItemsPort lists items that can be loaned, for the form select.
type AvailableItemsPort interface {
	AvailableItems(ctx context.Context) ([]inventory.Item, error)
}

// Handler serves the /loans pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	items     AvailableItemsPort
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, items AvailableItemsPort, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, items: items, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers loan routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listLoans)
	r.Get("/new", h.showCreateForm)
	r.Post("/", h.createLoan)
	r.Post("/{id}/return", h.returnLoan)
}

type formErrors map[string]string

type loanForm struct {
	ItemID   int64  `validate:"required,gt=0"`
	Borrower string `validate:"required,min=2"`
	DueAt    string `validate:"required"`
}

func (h *Handler) listLoans(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	loans, pagination, err := h.service.List(r.Context(), ListFilter{Filter: filter, Page: page})
	if err != nil {
		h.logger.Error("list loans failed", slog.Any("error", err))
		h.render(w, r, "pages/loans/list.html", map[string]any{
			"Filter": filter, "Errors": formErrors{"general": shared.UserSafeMessage(err)},
		}, http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/loans/list.html", map[string]any{
		"Loans": Rows(loans, time.Now()), "Filter": filter, "Pagination": pagination.WithQuery(r.URL.Query()), "Errors": formErrors{},
	}, http.StatusOK)
}

func (h *Handler) showCreateForm(w http.ResponseWriter, r *http.Request) {
	available, err := h.items.AvailableItems(r.Context())
	if err != nil {
		h.logger.Error("list available items failed", slog.Any("error", err))
	}
	h.render(w, r, "pages/loans/form.html", map[string]any{
		"Form": loanForm{}, "AvailableItems": available, "Errors": formErrors{},
	}, http.StatusOK)
}

func (h *Handler) createLoan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	itemID, _ := strconv.ParseInt(r.PostFormValue("item_id"), 10, 64)
	form := loanForm{
		ItemID:   itemID,
		Borrower: r.PostFormValue("borrower"),
		DueAt:    r.PostFormValue("due_at"),
	}
	errs := formErrors{}
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs[fieldErr.Field()] = fieldErr.Error()
		}
	}
	dueAt, err := time.Parse("2006-01-02", form.DueAt)
	if err != nil && errs["DueAt"] == "" {
		errs["DueAt"] = "Enter a valid date"
	}
	if len(errs) > 0 {
		h.renderFormWithErrors(w, r, form, errs, http.StatusBadRequest)
		return
	}

	actorID := shared.ActorID(shared.SessionFromContext(r.Context()))
	// Loans run until end of day on the due date.
	due := dueAt.Add(24*time.Hour - time.Second)
	_, err = h.service.Create(r.Context(), NewLoan{ItemID: form.ItemID, Borrower: form.Borrower, DueAt: due, ActorID: actorID})
	if err != nil {
		switch {
		case errors.Is(err, ErrDueInPast):
			errs["DueAt"] = "Due date must be in the future"
		case errors.Is(err, ErrItemOnLoan), errors.Is(err, inventory.ErrNotAvailable):
			errs["general"] = "This item is not available for loan"
		default:
			h.logger.Error("create loan failed", slog.Any("error", err))
			errs["general"] = shared.UserSafeMessage(err)
		}
		h.renderFormWithErrors(w, r, form, errs, http.StatusBadRequest)
		return
	}
	h.redirectWithFlash(w, r, "/loans", "success", "Loan created")
}

func (h *Handler) returnLoan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	actorID := shared.ActorID(shared.SessionFromContext(r.Context()))
	if err := h.service.Return(r.Context(), actorID, id); err != nil {
		h.logger.Error("return loan failed", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/loans", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/loans", "success", "Loan returned")
}

func (h *Handler) renderFormWithErrors(w http.ResponseWriter, r *http.Request, form loanForm, errs formErrors, status int) {
	available, err := h.items.AvailableItems(r.Context())
	if err != nil {
		h.logger.Warn("list available items failed", slog.Any("error", err))
	}
	h.render(w, r, "pages/loans/form.html", map[string]any{
		"Form": form, "AvailableItems": available, "Errors": errs,
	}, status)
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
