package reports

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/view"
)

// Handler serves the /reports pages.
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

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showSummary)
	r.Get("/export.csv", h.exportCSV)
}

func (h *Handler) showSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("build report summary failed", slog.Any("error", err))
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
		"Categories": summary.Categories,
		"Activity":   summary.Activity,
	})
	if err := h.templates.Render(w, "pages/reports/summary.html", data); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("build report export failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filename := "inventory-report-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"category", "items", "total_qty", "on_loan"})
	for _, row := range summary.Categories {
		_ = writer.Write([]string{
			row.Category,
			strconv.Itoa(row.Items),
			strconv.Itoa(row.TotalQty),
			strconv.Itoa(row.OnLoan),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("write report export", slog.Any("error", err))
	}
}
