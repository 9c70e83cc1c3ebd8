package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bonevet/inventory/internal/loans"
	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/view"
)

// Handler serves the dashboard at /.
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

// MountRoutes registers the dashboard route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("build dashboard failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	data := view.PageData(r.URL.Path, shared.DisplayName(sess), csrfToken, flash, map[string]any{
		"Cards":       statCards(overview),
		"RecentLoans": loans.Rows(overview.RecentLoans, time.Now()),
	})
	if err := h.templates.Render(w, "pages/home.html", data); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func statCards(overview Overview) []view.StatCard {
	cards := []view.StatCard{
		{
			Title:   "Total Items",
			Value:   view.StatValue(overview.Items.Total),
			Icon:    view.IconBox,
			Variant: view.VariantPrimary,
		},
		{
			Title:   "Available",
			Value:   view.StatValue(overview.Items.Available),
			Icon:    view.IconCheck,
			Variant: view.VariantSuccess,
		},
		{
			Title:   "Active Loans",
			Value:   view.StatValue(overview.Loans.Open),
			Icon:    view.IconClock,
			Variant: view.VariantWarning,
		},
	}
	overdue := view.StatCard{
		Title:   "Overdue",
		Value:   view.StatValue(overview.Loans.Overdue),
		Icon:    view.IconAlert,
		Variant: view.VariantDestructive,
	}
	if overview.Loans.Overdue > 0 {
		overdue.Footer = `<a href="/loans?filter=overdue">Review overdue loans</a>`
	}
	return append(cards, overdue)
}
