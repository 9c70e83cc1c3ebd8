package auditlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the audit_logs table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns a page of entries plus the total match count. Actors that
// no longer exist show up as "System".
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]TimelineEntry, int, error) {
	where := `TRUE`
	var args []any
	if filter.Entity != "" {
		args = append(args, filter.Entity)
		where += fmt.Sprintf(` AND a.entity = $%d`, len(args))
	}
	if filter.ActorID > 0 {
		args = append(args, filter.ActorID)
		where += fmt.Sprintf(` AND a.actor_id = $%d`, len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where += fmt.Sprintf(` AND a.occurred_at >= $%d`, len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where += fmt.Sprintf(` AND a.occurred_at <= $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_logs a WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := fmt.Sprintf(` ORDER BY a.occurred_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	rows, err := r.pool.Query(ctx,
		`SELECT a.occurred_at, COALESCE(u.name, 'System'), a.action, a.entity, a.entity_id
		 FROM audit_logs a
		 LEFT JOIN users u ON u.id = a.actor_id
		 WHERE `+where+page, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []TimelineEntry
	for rows.Next() {
		var entry TimelineEntry
		if err := rows.Scan(&entry.OccurredAt, &entry.ActorName, &entry.Action, &entry.Entity, &entry.EntityID); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
