package inventory

import (
	"errors"
	"time"
)

// ItemStatus enumerates lifecycle states of an inventory item.
type ItemStatus string

const (
	// StatusAvailable means the item can be loaned out.
	StatusAvailable ItemStatus = "available"
	// StatusLoaned means the item is currently out on loan.
	StatusLoaned ItemStatus = "loaned"
	// StatusMaintenance means the item is being repaired or serviced.
	StatusMaintenance ItemStatus = "maintenance"
	// StatusRetired means the item left the inventory permanently.
	StatusRetired ItemStatus = "retired"
)

// Statuses lists all item states in display order.
var Statuses = []ItemStatus{StatusAvailable, StatusLoaned, StatusMaintenance, StatusRetired}

// Item models one inventory record.
type Item struct {
	ID        int64
	Code      string
	Name      string
	Category  string
	Status    ItemStatus
	Qty       int
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem carries fields required to register an item.
type NewItem struct {
	Code     string
	Name     string
	Category string
	Qty      int
	Location string
}

// ListFilter narrows and pages the item listing.
type ListFilter struct {
	Query   string
	Page    int
	PerPage int
}

// ItemLoan is a row of the loan history shown on the item detail page.
type ItemLoan struct {
	Borrower   string
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt time.Time
}

// Stats summarises the catalog for the dashboard.
type Stats struct {
	Total     int
	Available int
}

// ErrDuplicateCode indicates an item code already in use.
var ErrDuplicateCode = errors.New("inventory: item code already exists")

// ErrNotAvailable indicates the item cannot be loaned in its current state.
var ErrNotAvailable = errors.New("inventory: item not available")

// ErrInvalidQuantity indicates a negative quantity.
var ErrInvalidQuantity = errors.New("inventory: quantity must be >= 0")
