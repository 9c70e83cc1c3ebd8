package documents

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonevet/inventory/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns a page of documents plus the total count. The uploader
// name is joined in so the listing never looks users up per row.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Document, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.title, d.kind, d.entity, d.entity_id, COALESCE(u.name, 'Unknown'), d.size_bytes, d.downloads, d.created_at
		 FROM documents d
		 LEFT JOIN users u ON u.id = d.uploaded_by
		 ORDER BY d.created_at DESC
		 LIMIT $1 OFFSET $2`,
		filter.PerPage, (filter.Page-1)*filter.PerPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Kind, &doc.Entity, &doc.EntityID, &doc.UploadedBy, &doc.SizeBytes, &doc.Downloads, &doc.CreatedAt); err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	return docs, total, rows.Err()
}

// Create inserts a document metadata record.
func (r *Repository) Create(ctx context.Context, doc NewDocument) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO documents (title, kind, entity, entity_id, uploaded_by, size_bytes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`,
		doc.Title, doc.Kind, doc.Entity, doc.EntityID, doc.ActorID, doc.SizeBytes).Scan(&id)
	return id, err
}

// RecordDownload bumps the download counter.
func (r *Repository) RecordDownload(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
