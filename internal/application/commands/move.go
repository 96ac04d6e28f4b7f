package commands

import (
	"context"
	"strings"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// MoveCommand moves one video to another directory of its root
type MoveCommand struct {
	mutator   Mutator
	ID        string
	TargetDir string
	Disk      domain.DiskOptions
}

// NewMoveCommand creates a new MoveCommand
func NewMoveCommand(mutator Mutator, id, targetDir string) *MoveCommand {
	return &MoveCommand{
		mutator:   mutator,
		ID:        id,
		TargetDir: targetDir,
	}
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	return application.ValidateTargetDir("targetDir", c.TargetDir)
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := c.mutator.MoveOne(ctx, strings.TrimSpace(c.ID), c.TargetDir, c.Disk)
	return singleResult(domain.KindMove, r), nil
}

// BatchMoveCommand moves a selection to one directory
type BatchMoveCommand struct {
	mutator   Mutator
	IDs       []string
	TargetDir string
	Disk      domain.DiskOptions
}

// NewBatchMoveCommand creates a new BatchMoveCommand
func NewBatchMoveCommand(mutator Mutator, ids []string, targetDir string) *BatchMoveCommand {
	return &BatchMoveCommand{
		mutator:   mutator,
		IDs:       ids,
		TargetDir: targetDir,
	}
}

// Validate checks if the batch move is valid
func (c *BatchMoveCommand) Validate() error {
	if err := application.ValidateIDs("ids", c.IDs); err != nil {
		return err
	}
	return application.ValidateTargetDir("targetDir", c.TargetDir)
}

// Execute runs the batch move
func (c *BatchMoveCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	br := c.mutator.BatchMove(ctx, c.IDs, c.TargetDir, c.Disk)
	return newMutationResult(domain.KindMove, br), nil
}
