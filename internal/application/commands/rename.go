package commands

import (
	"context"
	"strings"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// RenameCommand renames one video
type RenameCommand struct {
	mutator Mutator
	ID      string
	NewName string
	ApplyTo string
	Disk    domain.DiskOptions
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(mutator Mutator, id, newName, applyTo string) *RenameCommand {
	return &RenameCommand{
		mutator: mutator,
		ID:      id,
		NewName: newName,
		ApplyTo: applyTo,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	if err := application.ValidateName("newName", c.NewName); err != nil {
		return err
	}
	_, err := application.ParseApplyTo(c.ApplyTo)
	return err
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	applyTo, _ := application.ParseApplyTo(c.ApplyTo)

	r := c.mutator.RenameOne(ctx, strings.TrimSpace(c.ID), c.NewName, applyTo, c.Disk)
	return singleResult(domain.KindRename, r), nil
}

// BatchRenameCommand renames a selection with a numbering pattern
type BatchRenameCommand struct {
	mutator Mutator
	IDs     []string
	Options domain.BatchRenameOptions
}

// NewBatchRenameCommand creates a new BatchRenameCommand
func NewBatchRenameCommand(mutator Mutator, ids []string, opts domain.BatchRenameOptions) *BatchRenameCommand {
	return &BatchRenameCommand{
		mutator: mutator,
		IDs:     ids,
		Options: opts,
	}
}

// Validate checks if the batch rename is valid
func (c *BatchRenameCommand) Validate() error {
	if err := application.ValidateIDs("ids", c.IDs); err != nil {
		return err
	}
	return application.ValidateBatchOptions(c.Options)
}

// Execute runs the batch rename
func (c *BatchRenameCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	br := c.mutator.BatchRename(ctx, c.IDs, c.Options)
	return newMutationResult(domain.KindRename, br), nil
}
