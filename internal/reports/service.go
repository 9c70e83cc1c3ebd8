package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bonevet/inventory/internal/loans"
)

// CategoryRow is one line of the stock-by-category report.
type CategoryRow struct {
	Category string
	Items    int
	TotalQty int
	OnLoan   int
}

// Summary bundles everything the reports page shows.
type Summary struct {
	Categories []CategoryRow
	Activity   loans.Activity
}

// RepositoryPort abstracts the report queries.
type RepositoryPort interface {
	StockByCategory(ctx context.Context) ([]CategoryRow, error)
}

// ActivityPort supplies the loan activity window.
type ActivityPort interface {
	ActivitySince(ctx context.Context, since time.Time) (loans.Activity, error)
}

// Service assembles reports.
type Service struct {
	repo  RepositoryPort
	loans ActivityPort
	now   func() time.Time
}

// NewService builds a Service.
func NewService(repo RepositoryPort, loans ActivityPort) *Service {
	return &Service{repo: repo, loans: loans, now: time.Now}
}

// ActivityWindow is how far back the loan activity summary looks.
const ActivityWindow = 30 * 24 * time.Hour

// Summary fetches the category rows and the loan activity concurrently.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.repo.StockByCategory(ctx)
		summary.Categories = rows
		return err
	})
	group.Go(func() error {
		activity, err := s.loans.ActivitySince(ctx, s.now().Add(-ActivityWindow))
		summary.Activity = activity
		return err
	})
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
