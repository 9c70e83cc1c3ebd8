package documents

import (
	"context"
	"errors"
	"strconv"

	"github.com/bonevet/inventory/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]Document, int, error)
	Create(ctx context.Context, doc NewDocument) (int64, error)
	RecordDownload(ctx context.Context, id int64) error
}

// AuditPort records document actions.
type AuditPort interface {
	Record(ctx context.Context, entry shared.AuditEntry) error
}

// Service coordinates document registration.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds a Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns a page of documents, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Document, shared.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	docs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return docs, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

// Register stores a document metadata record.
func (s *Service) Register(ctx context.Context, doc NewDocument) (int64, error) {
	if doc.Kind == "" {
		doc.Kind = KindOther
	}
	if !ValidKind(doc.Kind) {
		return 0, errors.New("documents: unknown kind")
	}
	id, err := s.repo.Create(ctx, doc)
	if err != nil {
		return 0, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditEntry{
			ActorID:  doc.ActorID,
			Action:   "document.register",
			Entity:   "document",
			EntityID: strconv.FormatInt(id, 10),
			Meta:     map[string]any{"title": doc.Title, "kind": string(doc.Kind)},
		})
	}
	return id, nil
}

// RecordDownload counts a retrieval of the underlying file. The file
// itself lives outside the system; only the tally is kept.
func (s *Service) RecordDownload(ctx context.Context, id int64) error {
	return s.repo.RecordDownload(ctx, id)
}
