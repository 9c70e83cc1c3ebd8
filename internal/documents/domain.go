package documents

import (
	"fmt"
	"time"
)

// DocumentKind classifies a registered document.
type DocumentKind string

const (
	KindManual   DocumentKind = "manual"
	KindInvoice  DocumentKind = "invoice"
	KindWarranty DocumentKind = "warranty"
	KindPhoto    DocumentKind = "photo"
	KindOther    DocumentKind = "other"
)

// Kinds lists all document kinds in display order.
var Kinds = []DocumentKind{KindManual, KindInvoice, KindWarranty, KindPhoto, KindOther}

// Document is a metadata record for a file kept outside the system.
type Document struct {
	ID         int64
	Title      string
	Kind       DocumentKind
	Entity     string
	EntityID   string
	UploadedBy string
	SizeBytes  int64
	Downloads  int
	CreatedAt  time.Time
}

// SizeLabel renders the byte count in a human unit.
func (d Document) SizeLabel() string {
	switch {
	case d.SizeBytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(d.SizeBytes)/(1<<20))
	case d.SizeBytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(d.SizeBytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", d.SizeBytes)
	}
}

// NewDocument carries the fields required to register a document.
type NewDocument struct {
	Title     string
	Kind      DocumentKind
	Entity    string
	EntityID  string
	SizeBytes int64
	ActorID   int64
}

// ListFilter pages the document listing.
type ListFilter struct {
	Page    int
	PerPage int
}

// ValidKind reports whether the kind is one of the known values.
func ValidKind(kind DocumentKind) bool {
	for _, known := range Kinds {
		if known == kind {
			return true
		}
	}
	return false
}
