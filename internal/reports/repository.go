package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the report queries against PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// StockByCategory aggregates the active catalog per category. Items with
// no category fold into "Uncategorised"; retired stock is excluded.
func (r *Repository) StockByCategory(ctx context.Context) ([]CategoryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(NULLIF(category, ''), 'Uncategorised'),
		        COUNT(*),
		        COALESCE(SUM(qty), 0),
		        COUNT(*) FILTER (WHERE status = 'loaned')
		 FROM items
		 WHERE status <> 'retired'
		 GROUP BY 1
		 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CategoryRow
	for rows.Next() {
		var row CategoryRow
		if err := rows.Scan(&row.Category, &row.Items, &row.TotalQty, &row.OnLoan); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
