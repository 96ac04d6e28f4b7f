package commands

import (
	"context"
	"fmt"
	"strings"

	"videovault/internal/domain"
)

// Mutator is the mutation coordinator as seen by commands
type Mutator interface {
	RenameOne(ctx context.Context, id, newBaseName string, applyTo domain.ApplyTo, opts domain.DiskOptions) domain.ItemResult
	BatchRename(ctx context.Context, ids []string, opts domain.BatchRenameOptions) domain.BatchResult
	MoveOne(ctx context.Context, id, targetDir string, opts domain.DiskOptions) domain.ItemResult
	BatchMove(ctx context.Context, ids []string, targetDir string, opts domain.DiskOptions) domain.BatchResult
	DeleteOne(ctx context.Context, id string) domain.ItemResult
	BatchDelete(ctx context.Context, ids []string) domain.BatchResult
	Undo(ctx context.Context, undoID string) error
	Pending() []domain.UndoEntry
}

// ItemLister reads the library
type ItemLister interface {
	List() []domain.Item
	Get(id string) (domain.Item, bool)
}

// MutationResult reports the outcome of a rename, move or delete
type MutationResult struct {
	domain.BatchResult
	Message string
}

// OK reports whether every item succeeded
func (r *MutationResult) OK() bool {
	return r.Failed == 0
}

func singleResult(kind domain.MutationKind, r domain.ItemResult) *MutationResult {
	br := domain.NewBatchResult([]domain.PerItemResult{r.PerItemResult})
	br.UndoID = r.UndoID
	br.Deferred = r.Deferred
	return newMutationResult(kind, br)
}

func newMutationResult(kind domain.MutationKind, br domain.BatchResult) *MutationResult {
	return &MutationResult{BatchResult: br, Message: summarize(kind, br)}
}

// summarize builds the one-line report of a mutation
func summarize(kind domain.MutationKind, br domain.BatchResult) string {
	verb := map[domain.MutationKind]string{
		domain.KindRename: "Renamed",
		domain.KindMove:   "Moved",
		domain.KindDelete: "Deleted",
	}[kind]

	var b strings.Builder
	if br.Total == 1 && br.Success == 1 {
		fmt.Fprintf(&b, "%s %s", verb, br.Results[0].ID)
	} else {
		fmt.Fprintf(&b, "%s %d of %d items", verb, br.Success, br.Total)
	}

	if br.Failed > 0 {
		for _, r := range br.Results {
			if !r.Success {
				fmt.Fprintf(&b, "; %s: %s", r.ID, r.Error)
				break
			}
		}
		if br.Failed > 1 {
			fmt.Fprintf(&b, " (+%d more)", br.Failed-1)
		}
	}
	return b.String()
}
