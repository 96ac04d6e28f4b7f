package commands

import (
	"context"
	"strings"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// DeleteCommand hides a video and schedules its file for deletion
type DeleteCommand struct {
	mutator Mutator
	ID      string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(mutator Mutator, id string) *DeleteCommand {
	return &DeleteCommand{
		mutator: mutator,
		ID:      id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateRequired("id", c.ID)
}

// Execute runs the delete command. The file is removed once the undo window
// closes unless the returned UndoID is undone first.
func (c *DeleteCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := c.mutator.DeleteOne(ctx, strings.TrimSpace(c.ID))
	return singleResult(domain.KindDelete, r), nil
}

// BatchDeleteCommand deletes a selection
type BatchDeleteCommand struct {
	mutator Mutator
	IDs     []string
}

// NewBatchDeleteCommand creates a new BatchDeleteCommand
func NewBatchDeleteCommand(mutator Mutator, ids []string) *BatchDeleteCommand {
	return &BatchDeleteCommand{
		mutator: mutator,
		IDs:     ids,
	}
}

// Validate checks if the batch delete is valid
func (c *BatchDeleteCommand) Validate() error {
	return application.ValidateIDs("ids", c.IDs)
}

// Execute runs the batch delete
func (c *BatchDeleteCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	br := c.mutator.BatchDelete(ctx, c.IDs)
	return newMutationResult(domain.KindDelete, br), nil
}
