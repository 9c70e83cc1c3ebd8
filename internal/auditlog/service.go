package auditlog

import (
	"context"

	"github.com/bonevet/inventory/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]TimelineEntry, int, error)
}

// Service pages through the audit trail.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns a page of audit entries, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]TimelineEntry, shared.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return entries, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}
