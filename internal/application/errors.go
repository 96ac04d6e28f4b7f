package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid ID")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnknownRoot      = errors.New("unknown library root")
	ErrConflict         = errors.New("target already exists")
	ErrCrossDevice      = errors.New("cross-device move")
	ErrUndoFailed       = errors.New("undo failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DiskError represents a failed filesystem operation
type DiskError struct {
	Op      string
	ID      string
	Code    string
	Message string
	Err     error
}

func (e *DiskError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.ID, e.Message)
}

func (e *DiskError) Unwrap() error {
	return e.Err
}

// UndoError reports that an undo could only be partially applied.
// Items that failed to revert stay in their committed state.
type UndoError struct {
	UndoID string
	Kind   string
	Failed int
	Total  int
}

func (e *UndoError) Error() string {
	return fmt.Sprintf("undo %s %s: %d of %d items failed to revert", e.Kind, e.UndoID, e.Failed, e.Total)
}

func (e *UndoError) Is(target error) bool {
	return target == ErrUndoFailed
}
