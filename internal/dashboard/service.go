// Package dashboard assembles the landing page.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bonevet/inventory/internal/inventory"
	"github.com/bonevet/inventory/internal/loans"
)

// ItemStatsPort supplies catalog totals.
type ItemStatsPort interface {
	Stats(ctx context.Context) (inventory.Stats, error)
}

// LoanStatsPort supplies loan counts and the recent list.
type LoanStatsPort interface {
	Stats(ctx context.Context) (loans.Stats, error)
	Recent(ctx context.Context, limit int) ([]loans.Loan, error)
}

// Overview holds everything the dashboard shows.
type Overview struct {
	Items       inventory.Stats
	Loans       loans.Stats
	RecentLoans []loans.Loan
}

// Service gathers dashboard data.
type Service struct {
	items ItemStatsPort
	loans LoanStatsPort
}

// NewService builds a Service.
func NewService(items ItemStatsPort, loans LoanStatsPort) *Service {
	return &Service{items: items, loans: loans}
}

// Overview fetches all dashboard numbers concurrently.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var overview Overview
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		stats, err := s.items.Stats(ctx)
		overview.Items = stats
		return err
	})
	group.Go(func() error {
		stats, err := s.loans.Stats(ctx)
		overview.Loans = stats
		return err
	})
	group.Go(func() error {
		recent, err := s.loans.Recent(ctx, 5)
		overview.RecentLoans = recent
		return err
	})
	if err := group.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}
