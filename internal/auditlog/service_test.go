package auditlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	filter  ListFilter
	entries []TimelineEntry
}

func (r *captureRepo) List(ctx context.Context, filter ListFilter) ([]TimelineEntry, int, error) {
	r.filter = filter
	return r.entries, len(r.entries), nil
}

func TestListForwardsDateRange(t *testing.T) {
	repo := &captureRepo{entries: []TimelineEntry{{Action: "item.create", Entity: "item"}}}
	svc := NewService(repo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	entries, pagination, err := svc.List(context.Background(), ListFilter{
		Entity: "item", ActorID: 7, From: from, To: to,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.Equal(t, "item", repo.filter.Entity)
	require.Equal(t, int64(7), repo.filter.ActorID)
	require.Equal(t, from, repo.filter.From)
	require.Equal(t, to, repo.filter.To)
	require.Equal(t, 1, repo.filter.Page)
	require.Equal(t, 50, repo.filter.PerPage)
	require.Equal(t, 1, pagination.Total)
}

func TestParseDateRange(t *testing.T) {
	from, to := parseDateRange("2026-01-01", "2026-01-31")
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), to)

	from, to = parseDateRange("", "not-a-date")
	require.True(t, from.IsZero())
	require.True(t, to.IsZero())
}
