package auditlog

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/view"
)

// Handler serves the /audit-logs page.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listEntries)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	entity := r.URL.Query().Get("entity")
	actor := r.URL.Query().Get("actor")
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	actorID, _ := strconv.ParseInt(actor, 10, 64)
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	from, to := parseDateRange(fromRaw, toRaw)

	entries, pagination, err := h.service.List(r.Context(), ListFilter{
		Entity: entity, ActorID: actorID, From: from, To: to, Page: page,
	})
	if err != nil {
		h.logger.Error("list audit entries failed", slog.Any("error", err))
		h.render(w, r, map[string]any{
			"Entity": entity, "Actor": actor, "From": fromRaw, "To": toRaw,
			"Errors": map[string]string{"general": shared.UserSafeMessage(err)},
		}, http.StatusInternalServerError)
		return
	}
	h.render(w, r, map[string]any{
		"Entries": entries, "Entity": entity, "Actor": actor, "From": fromRaw, "To": toRaw,
		"Pagination": pagination.WithQuery(r.URL.Query()), "Errors": map[string]string{},
	}, http.StatusOK)
}

// parseDateRange turns the from/to query values into an inclusive
// occurred_at range. The upper bound runs until end of day; malformed
// values leave their side unbounded.
func parseDateRange(fromRaw, toRaw string) (time.Time, time.Time) {
	var from, to time.Time
	if t, err := time.Parse("2006-01-02", fromRaw); err == nil {
		from = t
	}
	if t, err := time.Parse("2006-01-02", toRaw); err == nil {
		to = t.Add(24*time.Hour - time.Second)
	}
	return from, to
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
	if err := h.templates.Render(w, "pages/audit/list.html", viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}
