package application

import "videovault/internal/domain"

// Re-export domain types for use by adapters
type (
	Item          = domain.Item
	Fields        = domain.Fields
	SearchHit     = domain.SearchHit
	ItemResult    = domain.ItemResult
	BatchResult   = domain.BatchResult
	PerItemResult = domain.PerItemResult
	UndoEntry     = domain.UndoEntry
	DiskOptions   = domain.DiskOptions
	ApplyTo       = domain.ApplyTo
	Notification  = domain.Notification
)

// Re-export rename modes
const (
	ApplyToDisplayName = domain.ApplyToDisplayName
	ApplyToFilename    = domain.ApplyToFilename
	ApplyToBoth        = domain.ApplyToBoth
)

// ParseApplyTo converts user input to an ApplyTo, defaulting to both
func ParseApplyTo(s string) (ApplyTo, error) {
	if s == "" {
		return domain.ApplyToBoth, nil
	}
	a := domain.ApplyTo(s)
	if !a.Valid() {
		return "", &ValidationError{Field: "applyTo", Message: "expected displayName, filename or both, got: " + s}
	}
	return a, nil
}
