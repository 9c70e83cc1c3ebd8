package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bonevet/inventory/internal/loans"
)

type stubRepo struct {
	rows []CategoryRow
	err  error
}

func (s stubRepo) StockByCategory(ctx context.Context) ([]CategoryRow, error) {
	return s.rows, s.err
}

type stubActivity struct {
	activity loans.Activity
	since    time.Time
}

func (s *stubActivity) ActivitySince(ctx context.Context, since time.Time) (loans.Activity, error) {
	s.since = since
	return s.activity, nil
}

func TestSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	activity := &stubActivity{activity: loans.Activity{Created: 9, Returned: 7, Overdue: 2}}
	svc := NewService(stubRepo{rows: []CategoryRow{{Category: "Electronics", Items: 12, TotalQty: 20, OnLoan: 4}}}, activity)
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Categories, 1)
	require.Equal(t, "Electronics", summary.Categories[0].Category)
	require.Equal(t, 9, summary.Activity.Created)
	require.Equal(t, now.Add(-ActivityWindow), activity.since)
}

func TestSummaryPropagatesErrors(t *testing.T) {
	svc := NewService(stubRepo{err: errors.New("db down")}, &stubActivity{})
	_, err := svc.Summary(context.Background())
	require.Error(t, err)
}
