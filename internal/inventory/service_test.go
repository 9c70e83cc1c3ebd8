package inventory

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bonevet/inventory/internal/shared"
)

type memoryRepo struct {
	items  map[int64]Item
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Item)}
}

func (r *memoryRepo) List(ctx context.Context, filter ListFilter) ([]Item, int, error) {
	var matched []Item
	for _, item := range r.items {
		if filter.Query == "" ||
			strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Query)) ||
			strings.Contains(strings.ToLower(item.Code), strings.ToLower(filter.Query)) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, len(matched), nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (*Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) Create(ctx context.Context, item NewItem) (int64, error) {
	for _, existing := range r.items {
		if existing.Code == item.Code {
			return 0, ErrDuplicateCode
		}
	}
	r.nextID++
	r.items[r.nextID] = Item{
		ID: r.nextID, Code: item.Code, Name: item.Name, Category: item.Category,
		Status: StatusAvailable, Qty: item.Qty, Location: item.Location,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return r.nextID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, status ItemStatus, qty int) error {
	item, ok := r.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	item.Status = status
	item.Qty = qty
	r.items[id] = item
	return nil
}

func (r *memoryRepo) TransitionStatus(ctx context.Context, id int64, from, to ItemStatus) error {
	item, ok := r.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	if item.Status != from {
		return ErrNotAvailable
	}
	item.Status = to
	r.items[id] = item
	return nil
}

func (r *memoryRepo) ListByStatus(ctx context.Context, status ItemStatus) ([]Item, error) {
	var matched []Item
	for _, item := range r.items {
		if item.Status == status {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (r *memoryRepo) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	for _, item := range r.items {
		if item.Status == StatusRetired {
			continue
		}
		stats.Total++
		if item.Status == StatusAvailable {
			stats.Available++
		}
	}
	return stats, nil
}

func TestCreateDefaultsQuantity(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, 1, NewItem{Code: "LAP-01", Name: "Laptop"})
	require.NoError(t, err)

	item, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, item.Qty)
	require.Equal(t, StatusAvailable, item.Status)
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, NewItem{Code: "LAP-01", Name: "Laptop", Qty: 2})
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, NewItem{Code: "LAP-01", Name: "Another laptop", Qty: 1})
	require.ErrorIs(t, err, ErrDuplicateCode)
}

func TestAdjustValidation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, 1, NewItem{Code: "PRN-01", Name: "3D Printer", Qty: 1})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Adjust(ctx, 1, id, StatusMaintenance, -1), ErrInvalidQuantity)
	require.Error(t, svc.Adjust(ctx, 1, id, ItemStatus("broken"), 1))

	require.NoError(t, svc.Adjust(ctx, 1, id, StatusMaintenance, 1))
	item, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusMaintenance, item.Status)
}

func TestLoanTransitions(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, 1, NewItem{Code: "CAM-01", Name: "Camera", Qty: 1})
	require.NoError(t, err)

	require.NoError(t, svc.MarkLoaned(ctx, id))
	// Already loaned, a second loan must fail.
	require.ErrorIs(t, svc.MarkLoaned(ctx, id), ErrNotAvailable)

	require.NoError(t, svc.MarkReturned(ctx, id))
	item, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusAvailable, item.Status)
}

func TestStatsExcludesRetired(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, NewItem{Code: "A-01", Name: "Drill", Qty: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, NewItem{Code: "A-02", Name: "Saw", Qty: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Adjust(ctx, 1, first, StatusRetired, 1))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 1, stats.Available)
}

func TestAvailableItems(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, 1, NewItem{Code: "B-01", Name: "Soldering iron", Qty: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, NewItem{Code: "B-02", Name: "Multimeter", Qty: 1})
	require.NoError(t, err)

	require.NoError(t, svc.MarkLoaned(ctx, id))

	available, err := svc.AvailableItems(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, "Multimeter", available[0].Name)
}
