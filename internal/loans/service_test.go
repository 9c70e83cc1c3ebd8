package loans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bonevet/inventory/internal/inventory"
	"github.com/bonevet/inventory/internal/shared"
)

type memoryRepo struct {
	loans  map[int64]Loan
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{loans: make(map[int64]Loan)}
}

func (r *memoryRepo) List(ctx context.Context, filter ListFilter, now time.Time) ([]Loan, int, error) {
	var matched []Loan
	for _, loan := range r.loans {
		switch filter.Filter {
		case "open":
			if !loan.ReturnedAt.IsZero() {
				continue
			}
		case "overdue":
			if !loan.ReturnedAt.IsZero() || !now.After(loan.DueAt) {
				continue
			}
		}
		matched = append(matched, loan)
	}
	return matched, len(matched), nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (*Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &loan, nil
}

func (r *memoryRepo) Create(ctx context.Context, loan NewLoan, loanedAt time.Time) (int64, error) {
	r.nextID++
	r.loans[r.nextID] = Loan{
		ID: r.nextID, ItemID: loan.ItemID, Borrower: loan.Borrower,
		LoanedAt: loanedAt, DueAt: loan.DueAt, CreatedBy: loan.ActorID,
	}
	return r.nextID, nil
}

func (r *memoryRepo) MarkReturned(ctx context.Context, id int64, returnedAt time.Time) error {
	loan, ok := r.loans[id]
	if !ok {
		return shared.ErrNotFound
	}
	if !loan.ReturnedAt.IsZero() {
		return ErrAlreadyReturned
	}
	loan.ReturnedAt = returnedAt
	r.loans[id] = loan
	return nil
}

func (r *memoryRepo) HasOpenLoan(ctx context.Context, itemID int64) (bool, error) {
	for _, loan := range r.loans {
		if loan.ItemID == itemID && loan.ReturnedAt.IsZero() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) HistoryForItem(ctx context.Context, itemID int64) ([]Loan, error) {
	var history []Loan
	for _, loan := range r.loans {
		if loan.ItemID == itemID {
			history = append(history, loan)
		}
	}
	return history, nil
}

func (r *memoryRepo) Recent(ctx context.Context, limit int) ([]Loan, error) {
	var recent []Loan
	for _, loan := range r.loans {
		if len(recent) == limit {
			break
		}
		recent = append(recent, loan)
	}
	return recent, nil
}

func (r *memoryRepo) Overdue(ctx context.Context, now time.Time) ([]Loan, error) {
	var overdue []Loan
	for _, loan := range r.loans {
		if loan.ReturnedAt.IsZero() && now.After(loan.DueAt) {
			overdue = append(overdue, loan)
		}
	}
	return overdue, nil
}

func (r *memoryRepo) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats
	for _, loan := range r.loans {
		if loan.ReturnedAt.IsZero() {
			stats.Open++
			if now.After(loan.DueAt) {
				stats.Overdue++
			}
		}
	}
	return stats, nil
}

func (r *memoryRepo) Activity(ctx context.Context, since, now time.Time) (Activity, error) {
	var activity Activity
	for _, loan := range r.loans {
		if loan.LoanedAt.After(since) {
			activity.Created++
		}
		if !loan.ReturnedAt.IsZero() && loan.ReturnedAt.After(since) {
			activity.Returned++
		}
		if loan.ReturnedAt.IsZero() && now.After(loan.DueAt) {
			activity.Overdue++
		}
	}
	return activity, nil
}

type stubItems struct {
	status map[int64]inventory.ItemStatus
}

func newStubItems(ids ...int64) *stubItems {
	s := &stubItems{status: make(map[int64]inventory.ItemStatus)}
	for _, id := range ids {
		s.status[id] = inventory.StatusAvailable
	}
	return s
}

func (s *stubItems) MarkLoaned(ctx context.Context, itemID int64) error {
	if s.status[itemID] != inventory.StatusAvailable {
		return inventory.ErrNotAvailable
	}
	s.status[itemID] = inventory.StatusLoaned
	return nil
}

func (s *stubItems) MarkReturned(ctx context.Context, itemID int64) error {
	if s.status[itemID] != inventory.StatusLoaned {
		return inventory.ErrNotAvailable
	}
	s.status[itemID] = inventory.StatusAvailable
	return nil
}

func newTestService(repo *memoryRepo, items *stubItems, at time.Time) *Service {
	svc := NewService(repo, items, nil)
	svc.now = func() time.Time { return at }
	return svc
}

func TestCreateLoan(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	items := newStubItems(1)
	svc := newTestService(newMemoryRepo(), items, now)
	ctx := context.Background()

	id, err := svc.Create(ctx, NewLoan{ItemID: 1, Borrower: "Drita", DueAt: now.Add(72 * time.Hour), ActorID: 5})
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, inventory.StatusLoaned, items.status[1])
}

func TestCreateLoanDueInPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newMemoryRepo(), newStubItems(1), now)

	_, err := svc.Create(context.Background(), NewLoan{ItemID: 1, Borrower: "Drita", DueAt: now.Add(-time.Hour)})
	require.ErrorIs(t, err, ErrDueInPast)
}

func TestCreateLoanItemAlreadyOut(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newMemoryRepo()
	svc := newTestService(repo, newStubItems(1), now)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewLoan{ItemID: 1, Borrower: "Drita", DueAt: now.Add(72 * time.Hour)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, NewLoan{ItemID: 1, Borrower: "Blerim", DueAt: now.Add(72 * time.Hour)})
	require.ErrorIs(t, err, ErrItemOnLoan)
}

func TestReturnLoan(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newMemoryRepo()
	items := newStubItems(1)
	svc := newTestService(repo, items, now)
	ctx := context.Background()

	id, err := svc.Create(ctx, NewLoan{ItemID: 1, Borrower: "Drita", DueAt: now.Add(72 * time.Hour)})
	require.NoError(t, err)

	require.NoError(t, svc.Return(ctx, 5, id))
	require.Equal(t, inventory.StatusAvailable, items.status[1])

	require.ErrorIs(t, svc.Return(ctx, 5, id), ErrAlreadyReturned)
}

func TestOverdueAndStats(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := newMemoryRepo()
	svc := newTestService(repo, newStubItems(1, 2), start)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewLoan{ItemID: 1, Borrower: "Drita", DueAt: start.Add(24 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewLoan{ItemID: 2, Borrower: "Blerim", DueAt: start.Add(30 * 24 * time.Hour)})
	require.NoError(t, err)

	// A week later the first loan is overdue.
	svc.now = func() time.Time { return start.Add(7 * 24 * time.Hour) }

	overdue, err := svc.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, "Drita", overdue[0].Borrower)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Open)
	require.Equal(t, 1, stats.Overdue)
}

func TestLoanRowStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	loansList := []Loan{
		{ID: 1, DueAt: now.Add(time.Hour)},
		{ID: 2, DueAt: now.Add(-time.Hour)},
		{ID: 3, DueAt: now.Add(-time.Hour), ReturnedAt: now.Add(-time.Minute)},
	}
	rows := Rows(loansList, now)
	require.Equal(t, "open", rows[0].Status)
	require.Equal(t, "overdue", rows[1].Status)
	require.Equal(t, "returned", rows[2].Status)
}
