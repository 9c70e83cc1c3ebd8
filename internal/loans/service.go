package loans

import (
	"context"
	"strconv"
	"time"

	"github.com/bonevet/inventory/internal/inventory"
	"github.com/bonevet/inventory/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter, now time.Time) ([]Loan, int, error)
	FindByID(ctx context.Context, id int64) (*Loan, error)
	Create(ctx context.Context, loan NewLoan, loanedAt time.Time) (int64, error)
	MarkReturned(ctx context.Context, id int64, returnedAt time.Time) error
	HasOpenLoan(ctx context.Context, itemID int64) (bool, error)
	HistoryForItem(ctx context.Context, itemID int64) ([]Loan, error)
	Recent(ctx context.Context, limit int) ([]Loan, error)
	Overdue(ctx context.Context, now time.Time) ([]Loan, error)
	Stats(ctx context.Context, now time.Time) (Stats, error)
	Activity(ctx context.Context, since, now time.Time) (Activity, error)
}

// ItemPort lets the service flip item availability in the inventory module.
type ItemPort interface {
	MarkLoaned(ctx context.Context, itemID int64) error
	MarkReturned(ctx context.Context, itemID int64) error
}

// AuditPort records loan actions.
type AuditPort interface {
	Record(ctx context.Context, entry shared.AuditEntry) error
}

// Service coordinates loan operations.
type Service struct {
	repo  RepositoryPort
	items ItemPort
	audit AuditPort
	now   func() time.Time
}

// NewService builds a Service.
func NewService(repo RepositoryPort, items ItemPort, audit AuditPort) *Service {
	return &Service{repo: repo, items: items, audit: audit, now: time.Now}
}

// List returns a page of loans matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Loan, shared.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	loans, total, err := s.repo.List(ctx, filter, s.now())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return loans, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

// Create opens a loan. The item must be available; marking it loaned
// first guarantees no item ever sits on two open loans.
func (s *Service) Create(ctx context.Context, loan NewLoan) (int64, error) {
	now := s.now()
	if !loan.DueAt.After(now) {
		return 0, ErrDueInPast
	}
	open, err := s.repo.HasOpenLoan(ctx, loan.ItemID)
	if err != nil {
		return 0, err
	}
	if open {
		return 0, ErrItemOnLoan
	}
	if err := s.items.MarkLoaned(ctx, loan.ItemID); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, loan, now)
	if err != nil {
		// Roll the item state back so it does not stay stuck as loaned.
		_ = s.items.MarkReturned(ctx, loan.ItemID)
		return 0, err
	}
	s.recordAudit(ctx, loan.ActorID, "loan.create", id, map[string]any{
		"item_id": loan.ItemID, "borrower": loan.Borrower, "due_at": loan.DueAt,
	})
	return id, nil
}

// Return closes an open loan and frees the item.
func (s *Service) Return(ctx context.Context, actorID, id int64) error {
	loan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !loan.ReturnedAt.IsZero() {
		return ErrAlreadyReturned
	}
	if err := s.repo.MarkReturned(ctx, id, s.now()); err != nil {
		return err
	}
	if err := s.items.MarkReturned(ctx, loan.ItemID); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "loan.return", id, map[string]any{"item_id": loan.ItemID})
	return nil
}

// HistoryForItem lists past and present loans of an item, newest first.
func (s *Service) HistoryForItem(ctx context.Context, itemID int64) ([]inventory.ItemLoan, error) {
	loans, err := s.repo.HistoryForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	history := make([]inventory.ItemLoan, len(loans))
	for i, loan := range loans {
		history[i] = inventory.ItemLoan{
			Borrower:   loan.Borrower,
			LoanedAt:   loan.LoanedAt,
			DueAt:      loan.DueAt,
			ReturnedAt: loan.ReturnedAt,
		}
	}
	return history, nil
}

// Recent returns the latest loans for the dashboard panel.
func (s *Service) Recent(ctx context.Context, limit int) ([]Loan, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.Recent(ctx, limit)
}

// Overdue lists unreturned loans past their due date.
func (s *Service) Overdue(ctx context.Context) ([]Loan, error) {
	return s.repo.Overdue(ctx, s.now())
}

// Stats returns open/overdue counts for the dashboard.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx, s.now())
}

// ActivitySince summarises loan movement for the reports page.
func (s *Service) ActivitySince(ctx context.Context, since time.Time) (Activity, error) {
	return s.repo.Activity(ctx, since, s.now())
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, loanID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   "loan",
		EntityID: strconv.FormatInt(loanID, 10),
		Meta:     meta,
	})
}
