package mutation

import (
	"fmt"
	"math"
	"time"

	"videovault/internal/domain"
)

func pastTense(kind domain.MutationKind) string {
	switch kind {
	case domain.KindRename:
		return "Renamed"
	case domain.KindMove:
		return "Moved"
	case domain.KindDelete:
		return "Deleted"
	default:
		return string(kind)
	}
}

// notifyBatch reports how many of the results succeeded
func (c *Coordinator) notifyBatch(kind domain.MutationKind, results []domain.PerItemResult, undoID string, timeout time.Duration) {
	ok := 0
	var firstErr string
	for _, r := range results {
		if r.Success {
			ok++
		} else if firstErr == "" {
			firstErr = r.Error
		}
	}

	n := domain.Notification{
		Level:   domain.LevelInfo,
		Kind:    kind,
		UndoID:  undoID,
		Timeout: timeout,
	}
	switch {
	case len(results) == 1 && ok == 1:
		n.Message = fmt.Sprintf("%s 1 item", pastTense(kind))
	case len(results) == 1:
		n.Level = domain.LevelError
		n.Message = fmt.Sprintf("%s failed: %s", verb(kind), firstErr)
	case ok == len(results):
		n.Message = fmt.Sprintf("%s %d of %d items", pastTense(kind), ok, len(results))
	default:
		n.Level = domain.LevelError
		n.Message = fmt.Sprintf("%s %d of %d items, %d failed: %s", pastTense(kind), ok, len(results), len(results)-ok, firstErr)
	}
	if timeout > 0 && undoID != "" {
		n.Message += fmt.Sprintf(", undo available for %ds", int(math.Ceil(timeout.Seconds())))
	}
	c.notifier.Notify(n)
}

func (c *Coordinator) notifyNotFound(kind domain.MutationKind, id string) {
	c.notifier.Notify(domain.Notification{
		Level:   domain.LevelError,
		Kind:    kind,
		Message: fmt.Sprintf("%s failed: item %s not found", verb(kind), id),
	})
}

func (c *Coordinator) notifyUndone(entry domain.UndoEntry, failed int) {
	n := domain.Notification{
		Level:   domain.LevelInfo,
		Kind:    entry.Kind,
		Message: fmt.Sprintf("Undid: %s", entry.Description),
	}
	if failed > 0 {
		n.Level = domain.LevelError
		n.Message = fmt.Sprintf("Undo failed for %d of %d items: %s", failed, len(entry.Intents), entry.Description)
	}
	c.notifier.Notify(n)
}

func (c *Coordinator) notifyFinalizeFailed(failed, total int, firstErr string) {
	c.notifier.Notify(domain.Notification{
		Level:   domain.LevelError,
		Kind:    domain.KindDelete,
		Message: fmt.Sprintf("Delete failed for %d of %d items, restored: %s", failed, total, firstErr),
	})
}
