package undo

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"videovault/internal/domain"
)

func TestRegistry_TakeExactlyOnce(t *testing.T) {
	r := NewRegistry()
	r.Register(domain.UndoEntry{UndoID: "u1", Kind: domain.KindDelete})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, ok := r.Take("u1"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("Take succeeded %d times, want 1", wins.Load())
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_AttachAndPeek(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewScheduler(clock)
	r := NewRegistry()

	r.Register(domain.UndoEntry{UndoID: "u1", Kind: domain.KindDelete})
	token := s.Schedule(time.Second, func() {})

	if !r.Attach("u1", token) {
		t.Fatal("Attach() on a live entry should succeed")
	}
	if r.Attach("missing", token) {
		t.Error("Attach() on an unknown entry should fail")
	}

	if _, ok := r.Peek("u1"); !ok {
		t.Fatal("Peek() should find the entry")
	}
	if r.Len() != 1 {
		t.Errorf("Peek must not consume the entry")
	}

	_, got, ok := r.Take("u1")
	if !ok || got != token {
		t.Errorf("Take() returned token %v ok=%v", got, ok)
	}
}

func TestRegistry_PendingOrder(t *testing.T) {
	base := time.Unix(100, 0)
	r := NewRegistry()
	r.Register(domain.UndoEntry{UndoID: "c", CreatedAt: base.Add(2 * time.Second)})
	r.Register(domain.UndoEntry{UndoID: "a", CreatedAt: base})
	r.Register(domain.UndoEntry{UndoID: "b", CreatedAt: base.Add(time.Second)})

	pending := r.Pending()
	if len(pending) != 3 {
		t.Fatalf("Pending() returned %d entries", len(pending))
	}
	for i, want := range []string{"a", "b", "c"} {
		if pending[i].UndoID != want {
			t.Errorf("Pending()[%d] = %s, want %s", i, pending[i].UndoID, want)
		}
	}
}
