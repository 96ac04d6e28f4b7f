package mutation

import (
	"context"
	"sort"
	"sync"
)

// lockSet serializes mutations by item id. Ids are always acquired in
// sorted order so two overlapping batches cannot deadlock.
type lockSet struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newLockSet() *lockSet {
	return &lockSet{held: make(map[string]chan struct{})}
}

// acquire blocks until every id is free or ctx is done
func (l *lockSet) acquire(ctx context.Context, ids []string) (func(), error) {
	keys := sortedUnique(ids)
	acquired := make([]string, 0, len(keys))

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for _, id := range acquired {
			close(l.held[id])
			delete(l.held, id)
		}
	}

	for _, id := range keys {
		for {
			l.mu.Lock()
			wait, busy := l.held[id]
			if !busy {
				l.held[id] = make(chan struct{})
				l.mu.Unlock()
				acquired = append(acquired, id)
				break
			}
			l.mu.Unlock()

			select {
			case <-wait:
			case <-ctx.Done():
				release()
				return nil, ctx.Err()
			}
		}
	}
	return release, nil
}

func sortedUnique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}
