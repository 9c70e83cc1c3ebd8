package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bonevet/inventory/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]Item, int, error)
	FindByID(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, item NewItem) (int64, error)
	Update(ctx context.Context, id int64, status ItemStatus, qty int) error
	TransitionStatus(ctx context.Context, id int64, from, to ItemStatus) error
	ListByStatus(ctx context.Context, status ItemStatus) ([]Item, error)
	Stats(ctx context.Context) (Stats, error)
}

// AuditPort records inventory actions.
type AuditPort interface {
	Record(ctx context.Context, entry shared.AuditEntry) error
}

// Service coordinates inventory operations.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds a Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns a page of items matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Item, shared.Pagination, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

// FindByID returns one item.
func (s *Service) FindByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a new item in available state.
func (s *Service) Create(ctx context.Context, actorID int64, item NewItem) (int64, error) {
	if item.Qty <= 0 {
		item.Qty = 1
	}
	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return 0, err
	}
	s.recordAudit(ctx, actorID, "item.create", id, map[string]any{"code": item.Code, "name": item.Name})
	return id, nil
}

// Adjust updates status and quantity of an item.
func (s *Service) Adjust(ctx context.Context, actorID, id int64, status ItemStatus, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}
	if !validStatus(status) {
		return errors.New("inventory: unknown status")
	}
	if err := s.repo.Update(ctx, id, status, qty); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "item.adjust", id, map[string]any{"status": string(status), "qty": qty})
	return nil
}

// MarkLoaned transitions an available item to loaned. Used by the loans
// module; fails with ErrNotAvailable when the item is in any other state,
// which also guarantees an item can never sit on two open loans.
func (s *Service) MarkLoaned(ctx context.Context, itemID int64) error {
	return s.repo.TransitionStatus(ctx, itemID, StatusAvailable, StatusLoaned)
}

// MarkReturned transitions a loaned item back to available.
func (s *Service) MarkReturned(ctx context.Context, itemID int64) error {
	return s.repo.TransitionStatus(ctx, itemID, StatusLoaned, StatusAvailable)
}

// AvailableItems lists items that can currently be loaned out.
func (s *Service) AvailableItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListByStatus(ctx, StatusAvailable)
}

// Stats returns catalog totals for the dashboard.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func validStatus(status ItemStatus) bool {
	for _, known := range Statuses {
		if known == status {
			return true
		}
	}
	return false
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, itemID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   "item",
		EntityID: strconv.FormatInt(itemID, 10),
		Meta:     meta,
	})
}
