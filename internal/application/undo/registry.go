// Package undo keeps the compensating actions of committed mutations and
// the timers that finalize deferred ones.
package undo

import (
	"sort"
	"sync"

	"videovault/internal/domain"
)

type record struct {
	entry domain.UndoEntry
	token *Token
}

// Registry maps undo ids to their entries. Take is the only way to consume
// an entry, so whichever of undo and finalization takes it first wins.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*record
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*record)}
}

// Register stores entry under its UndoID, replacing any previous one
func (r *Registry) Register(entry domain.UndoEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.UndoID] = &record{entry: entry}
}

// Attach links a scheduled finalization to an entry. It reports false when
// the entry was already taken.
func (r *Registry) Attach(undoID string, token *Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.entries[undoID]
	if !ok {
		return false
	}
	rec.token = token
	return true
}

// Take removes and returns the entry. It succeeds at most once per id.
func (r *Registry) Take(undoID string) (domain.UndoEntry, *Token, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.entries[undoID]
	if !ok {
		return domain.UndoEntry{}, nil, false
	}
	delete(r.entries, undoID)
	return rec.entry, rec.token, true
}

// Peek returns the entry without consuming it
func (r *Registry) Peek(undoID string) (domain.UndoEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.entries[undoID]
	if !ok {
		return domain.UndoEntry{}, false
	}
	return rec.entry, true
}

// Pending returns all live entries, oldest first
func (r *Registry) Pending() []domain.UndoEntry {
	r.mu.Lock()
	entries := make([]domain.UndoEntry, 0, len(r.entries))
	for _, rec := range r.entries {
		entries = append(entries, rec.entry)
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].UndoID < entries[j].UndoID
	})
	return entries
}

// Len returns the number of live entries
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
