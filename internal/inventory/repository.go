package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

// List returns a page of items plus the total match count.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Item, int, error) {
	pattern := "%" + filter.Query + "%"
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM items WHERE ($1 = '%%' OR code ILIKE $1 OR name ILIKE $1 OR category ILIKE $1)`,
		pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, category, status, qty, location, created_at, updated_at
		 FROM items
		 WHERE ($1 = '%%' OR code ILIKE $1 OR name ILIKE $1 OR category ILIKE $1)
		 ORDER BY name
		 LIMIT $2 OFFSET $3`,
		pattern, filter.PerPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.Category, &item.Status, &item.Qty, &item.Location, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// FindByID fetches one item.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name, category, status, qty, location, created_at, updated_at
		 FROM items WHERE id = $1`, id).
		Scan(&item.ID, &item.Code, &item.Name, &item.Category, &item.Status, &item.Qty, &item.Location, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an item in available state.
func (r *Repository) Create(ctx context.Context, item NewItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO items (code, name, category, status, qty, location, created_at, updated_at)
		 VALUES ($1, $2, $3, 'available', $4, $5, NOW(), NOW()) RETURNING id`,
		item.Code, item.Name, item.Category, item.Qty, item.Location).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateCode
		}
		return 0, err
	}
	return id, nil
}

// Update sets status and quantity.
func (r *Repository) Update(ctx context.Context, id int64, status ItemStatus, qty int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET status = $2, qty = $3, updated_at = NOW() WHERE id = $1`,
		id, status, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TransitionStatus moves an item between two states atomically. The WHERE
// clause on the current status makes concurrent transitions lose cleanly.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to ItemStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrNotAvailable
	}
	return nil
}

// ListByStatus returns all items in one state, ordered by name.
func (r *Repository) ListByStatus(ctx context.Context, status ItemStatus) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, category, status, qty, location, created_at, updated_at
		 FROM items WHERE status = $1 ORDER BY name`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.Category, &item.Status, &item.Qty, &item.Location, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Stats counts the catalog for the dashboard.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'available') FROM items WHERE status <> 'retired'`).
		Scan(&stats.Total, &stats.Available)
	return stats, err
}

var _ RepositoryPort = (*Repository)(nil)
