package mutation

import (
	"strings"

	"videovault/internal/domain"
)

// ItemReader is the read side of the library the planner needs
type ItemReader interface {
	Get(id string) (domain.Item, bool)
}

// Planner turns requests into intents. It only reads the library: ids that
// are not present are dropped, duplicates are kept.
type Planner struct {
	items ItemReader
}

// NewPlanner creates a planner reading from items
func NewPlanner(items ItemReader) Planner {
	return Planner{items: items}
}

// PlanRename plans renaming a single item to newBaseName
func (p Planner) PlanRename(id, newBaseName string, applyTo domain.ApplyTo) []domain.Intent {
	item, ok := p.items.Get(id)
	if !ok {
		return nil
	}
	return []domain.Intent{renameIntent(item, strings.TrimSpace(newBaseName), applyTo)}
}

// PlanBatchRename plans a numbered rename. The number of each item comes
// from its position among the ids that were found.
func (p Planner) PlanBatchRename(ids []string, opts domain.BatchRenameOptions) []domain.Intent {
	applyTo := opts.ApplyTo
	if applyTo == "" {
		applyTo = domain.ApplyToBoth
	}

	intents := make([]domain.Intent, 0, len(ids))
	for _, id := range ids {
		item, ok := p.items.Get(id)
		if !ok {
			continue
		}
		name := domain.BuildBatchName(item, len(intents), opts)
		intents = append(intents, renameIntent(item, name, applyTo))
	}
	return intents
}

func renameIntent(item domain.Item, newBase string, applyTo domain.ApplyTo) domain.Intent {
	original := item.Fields()
	next := original
	if applyTo.RenamesDisplayName() {
		next.DisplayName = newBase
	}
	if applyTo.RenamesFilename() {
		next.Filename = domain.FilenameWithOriginalExt(newBase, original.Filename)
	}
	return domain.Intent{
		ID:          item.ID,
		Kind:        domain.KindRename,
		Original:    original,
		Next:        next,
		Snapshot:    item,
		TouchesDisk: next.Filename != original.Filename,
	}
}

// PlanMove plans moving items into targetDir of their own root
func (p Planner) PlanMove(ids []string, targetDir string) []domain.Intent {
	dir := domain.NormalizeDir(targetDir)

	intents := make([]domain.Intent, 0, len(ids))
	for _, id := range ids {
		item, ok := p.items.Get(id)
		if !ok {
			continue
		}
		original := item.Fields()
		next := original
		next.Dir = dir
		intents = append(intents, domain.Intent{
			ID:          item.ID,
			Kind:        domain.KindMove,
			Original:    original,
			Next:        next,
			Snapshot:    item,
			TouchesDisk: next.Dir != original.Dir,
		})
	}
	return intents
}

// PlanDelete plans deleting items. Only the snapshot matters.
func (p Planner) PlanDelete(ids []string) []domain.Intent {
	intents := make([]domain.Intent, 0, len(ids))
	for _, id := range ids {
		item, ok := p.items.Get(id)
		if !ok {
			continue
		}
		intents = append(intents, domain.Intent{
			ID:          item.ID,
			Kind:        domain.KindDelete,
			Original:    item.Fields(),
			Snapshot:    item,
			TouchesDisk: true,
		})
	}
	return intents
}

// Invert returns the compensating intents of committed ones
func Invert(intents []domain.Intent) []domain.Intent {
	inverse := make([]domain.Intent, len(intents))
	for i, in := range intents {
		inv := in.Inverse()
		inv.TouchesDisk = inv.Next.Filename != inv.Original.Filename || inv.Next.Dir != inv.Original.Dir
		inverse[i] = inv
	}
	return inverse
}

// uniqueIntents keeps the first intent of every id, in order
func uniqueIntents(intents []domain.Intent) []domain.Intent {
	seen := make(map[string]struct{}, len(intents))
	unique := make([]domain.Intent, 0, len(intents))
	for _, in := range intents {
		if _, dup := seen[in.ID]; dup {
			continue
		}
		seen[in.ID] = struct{}{}
		unique = append(unique, in)
	}
	return unique
}

func intentIDs(intents []domain.Intent) []string {
	ids := make([]string, len(intents))
	for i, in := range intents {
		ids[i] = in.ID
	}
	return ids
}
