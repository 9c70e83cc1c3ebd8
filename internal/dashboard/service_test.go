package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bonevet/inventory/internal/inventory"
	"github.com/bonevet/inventory/internal/loans"
	"github.com/bonevet/inventory/internal/view"
)

type stubItemStats struct {
	stats inventory.Stats
	err   error
}

func (s stubItemStats) Stats(ctx context.Context) (inventory.Stats, error) {
	return s.stats, s.err
}

type stubLoanStats struct {
	stats  loans.Stats
	recent []loans.Loan
	err    error
}

func (s stubLoanStats) Stats(ctx context.Context) (loans.Stats, error) {
	return s.stats, s.err
}

func (s stubLoanStats) Recent(ctx context.Context, limit int) ([]loans.Loan, error) {
	if limit < len(s.recent) {
		return s.recent[:limit], s.err
	}
	return s.recent, s.err
}

func TestOverview(t *testing.T) {
	svc := NewService(
		stubItemStats{stats: inventory.Stats{Total: 42, Available: 30}},
		stubLoanStats{
			stats:  loans.Stats{Open: 12, Overdue: 3},
			recent: []loans.Loan{{ID: 1, ItemName: "Laptop", Borrower: "Drita", DueAt: time.Now()}},
		},
	)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, overview.Items.Total)
	require.Equal(t, 12, overview.Loans.Open)
	require.Len(t, overview.RecentLoans, 1)
}

func TestOverviewPropagatesErrors(t *testing.T) {
	svc := NewService(
		stubItemStats{err: errors.New("db down")},
		stubLoanStats{},
	)

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}

func TestStatCards(t *testing.T) {
	overview := Overview{
		Items: inventory.Stats{Total: 42, Available: 30},
		Loans: loans.Stats{Open: 12, Overdue: 3},
	}
	cards := statCards(overview)
	require.Len(t, cards, 4)

	require.Equal(t, "Total Items", cards[0].Title)
	require.Equal(t, view.VariantPrimary, cards[0].Variant)
	require.Equal(t, "42", cards[0].Value)

	require.Equal(t, "Available", cards[1].Title)
	require.Equal(t, view.VariantSuccess, cards[1].Variant)

	require.Equal(t, "Active Loans", cards[2].Title)
	require.Equal(t, view.VariantWarning, cards[2].Variant)

	require.Equal(t, "Overdue", cards[3].Title)
	require.Equal(t, view.VariantDestructive, cards[3].Variant)
	require.True(t, cards[3].HasFooter())
}

func TestStatCardsNoOverdueFooter(t *testing.T) {
	cards := statCards(Overview{})
	require.False(t, cards[3].HasFooter())
}
