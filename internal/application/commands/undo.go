package commands

import (
	"context"
	"fmt"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// UndoResult contains the result of an undo
type UndoResult struct {
	UndoID  string
	Message string
}

// UndoCommand reverts a mutation by its undo id
type UndoCommand struct {
	mutator Mutator
	UndoID  string
}

// NewUndoCommand creates a new UndoCommand
func NewUndoCommand(mutator Mutator, undoID string) *UndoCommand {
	return &UndoCommand{
		mutator: mutator,
		UndoID:  undoID,
	}
}

// Validate checks if the undo is valid
func (c *UndoCommand) Validate() error {
	return application.ValidateRequired("undoID", c.UndoID)
}

// Execute runs the undo. Unknown or already used ids succeed without effect.
func (c *UndoCommand) Execute(ctx context.Context) (*UndoResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	known := false
	for _, e := range c.mutator.Pending() {
		if e.UndoID == c.UndoID {
			known = true
			break
		}
	}

	if err := c.mutator.Undo(ctx, c.UndoID); err != nil {
		return nil, fmt.Errorf("failed to undo: %w", err)
	}

	msg := fmt.Sprintf("Undid %s", c.UndoID)
	if !known {
		msg = fmt.Sprintf("Nothing to undo for %s", c.UndoID)
	}
	return &UndoResult{UndoID: c.UndoID, Message: msg}, nil
}

// PendingUndoCommand lists the mutations that can still be undone
type PendingUndoCommand struct {
	mutator Mutator
}

// NewPendingUndoCommand creates a new PendingUndoCommand
func NewPendingUndoCommand(mutator Mutator) *PendingUndoCommand {
	return &PendingUndoCommand{mutator: mutator}
}

// Execute runs the command
func (c *PendingUndoCommand) Execute(ctx context.Context) ([]domain.UndoEntry, error) {
	return c.mutator.Pending(), nil
}
