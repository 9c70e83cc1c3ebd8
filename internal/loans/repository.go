package loans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
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

const loanColumns = `l.id, l.item_id, i.name, l.borrower, l.loaned_at, l.due_at, l.returned_at, l.created_by`

func scanLoan(row pgx.Row) (Loan, error) {
	var loan Loan
	var returnedAt pgtype.Timestamptz
	err := row.Scan(&loan.ID, &loan.ItemID, &loan.ItemName, &loan.Borrower, &loan.LoanedAt, &loan.DueAt, &returnedAt, &loan.CreatedBy)
	if err != nil {
		return Loan{}, err
	}
	if returnedAt.Valid {
		loan.ReturnedAt = returnedAt.Time
	}
	return loan, nil
}

func collectLoans(rows pgx.Rows) ([]Loan, error) {
	defer rows.Close()
	var loans []Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// List returns a page of loans plus the total match count.
func (r *Repository) List(ctx context.Context, filter ListFilter, now time.Time) ([]Loan, int, error) {
	where := `TRUE`
	var args []any
	switch filter.Filter {
	case "open":
		where = `l.returned_at IS NULL`
	case "overdue":
		where = `l.returned_at IS NULL AND l.due_at < $1`
		args = append(args, now)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans l WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := fmt.Sprintf(` ORDER BY l.loaned_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans l JOIN items i ON i.id = l.item_id WHERE `+where+limit,
		args...)
	if err != nil {
		return nil, 0, err
	}
	loans, err := collectLoans(rows)
	return loans, total, err
}

// FindByID fetches one loan.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Loan, error) {
	loan, err := scanLoan(r.pool.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans l JOIN items i ON i.id = l.item_id WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// Create inserts an open loan.
func (r *Repository) Create(ctx context.Context, loan NewLoan, loanedAt time.Time) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO loans (item_id, borrower, loaned_at, due_at, created_by)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		loan.ItemID, loan.Borrower, loanedAt, loan.DueAt, loan.ActorID).Scan(&id)
	return id, err
}

// MarkReturned stamps the return time on an open loan.
func (r *Repository) MarkReturned(ctx context.Context, id int64, returnedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE loans SET returned_at = $2 WHERE id = $1 AND returned_at IS NULL`, id, returnedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyReturned
	}
	return nil
}

// HasOpenLoan reports whether the item sits on an unreturned loan.
func (r *Repository) HasOpenLoan(ctx context.Context, itemID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM loans WHERE item_id = $1 AND returned_at IS NULL)`, itemID).Scan(&exists)
	return exists, err
}

// HistoryForItem lists loans of an item, newest first.
func (r *Repository) HistoryForItem(ctx context.Context, itemID int64) ([]Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans l JOIN items i ON i.id = l.item_id
		 WHERE l.item_id = $1 ORDER BY l.loaned_at DESC`, itemID)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// Recent returns the latest loans.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans l JOIN items i ON i.id = l.item_id
		 ORDER BY l.loaned_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// Overdue lists unreturned loans past their due date.
func (r *Repository) Overdue(ctx context.Context, now time.Time) ([]Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans l JOIN items i ON i.id = l.item_id
		 WHERE l.returned_at IS NULL AND l.due_at < $1 ORDER BY l.due_at`, now)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// Stats counts open and overdue loans.
func (r *Repository) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE returned_at IS NULL),
		        COUNT(*) FILTER (WHERE returned_at IS NULL AND due_at < $1)
		 FROM loans`, now).Scan(&stats.Open, &stats.Overdue)
	return stats, err
}

// Activity summarises loan movement in a window.
func (r *Repository) Activity(ctx context.Context, since, now time.Time) (Activity, error) {
	var activity Activity
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE loaned_at >= $1),
		        COUNT(*) FILTER (WHERE returned_at >= $1),
		        COUNT(*) FILTER (WHERE returned_at IS NULL AND due_at < $2)
		 FROM loans`, since, now).Scan(&activity.Created, &activity.Returned, &activity.Overdue)
	return activity, err
}

var _ RepositoryPort = (*Repository)(nil)
