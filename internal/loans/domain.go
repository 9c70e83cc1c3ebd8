package loans

import (
	"errors"
	"time"
)

// Loan models an item loaned to a member.
type Loan struct {
	ID         int64
	ItemID     int64
	ItemName   string
	Borrower   string
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt time.Time
	CreatedBy  int64
}

// Status derives the display state of the loan at the given instant.
func (l Loan) Status(now time.Time) string {
	switch {
	case !l.ReturnedAt.IsZero():
		return "returned"
	case now.After(l.DueAt):
		return "overdue"
	default:
		return "open"
	}
}

// Row is a loan with its status resolved for rendering.
type Row struct {
	Loan
	Status string
}

// Rows resolves loan statuses against the given instant.
func Rows(loans []Loan, now time.Time) []Row {
	rows := make([]Row, len(loans))
	for i, loan := range loans {
		rows[i] = Row{Loan: loan, Status: loan.Status(now)}
	}
	return rows
}

// NewLoan carries the fields required to open a loan.
type NewLoan struct {
	ItemID   int64
	Borrower string
	DueAt    time.Time
	ActorID  int64
}

// ListFilter narrows and pages the loan listing.
type ListFilter struct {
	Filter  string // "", "open" or "overdue"
	Page    int
	PerPage int
}

// Stats summarises loans for the dashboard.
type Stats struct {
	Open    int
	Overdue int
}

// Activity summarises loan movement for the reports page.
type Activity struct {
	Created  int
	Returned int
	Overdue  int
}

// ErrItemOnLoan indicates the item already sits on an open loan.
var ErrItemOnLoan = errors.New("loans: item already on loan")

// ErrAlreadyReturned indicates a double return.
var ErrAlreadyReturned = errors.New("loans: loan already returned")

// ErrDueInPast indicates a due date before the loan date.
var ErrDueInPast = errors.New("loans: due date must be in the future")
