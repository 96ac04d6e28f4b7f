package ports

import (
	"context"

	"videovault/internal/domain"
)

// DiskOperator performs file operations against the real filesystem.
// Every call receives the pre-mutation location of the item.
type DiskOperator interface {
	// AttemptRename renames the file in place to requestedFilename
	AttemptRename(ctx context.Context, loc domain.Location, requestedFilename string, opts domain.DiskOptions) (domain.DiskResult, error)

	// MoveFile moves the file into targetDir of the same root
	MoveFile(ctx context.Context, loc domain.Location, targetDir string, opts domain.DiskOptions) (domain.DiskResult, error)

	// DeleteFile removes the file permanently
	DeleteFile(ctx context.Context, loc domain.Location) (domain.DiskResult, error)
}
