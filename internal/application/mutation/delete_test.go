package mutation

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"videovault/internal/domain"
)

func TestBatchDelete_UndoBeforeTimeout(t *testing.T) {
	h := newHarness(WithUndoWindow(8 * time.Second))
	ctx := context.Background()
	original, _ := h.store.Get("1")

	br := h.coord.BatchDelete(ctx, []string{"1"})
	assertAccounting(t, br)
	if !br.Deferred || br.Success != 1 || br.UndoID == "" {
		t.Fatalf("unexpected result %+v", br)
	}
	if _, ok := h.store.Get("1"); ok {
		t.Fatal("item should be hidden immediately")
	}
	if last, _ := h.index.lastFor("1"); last.op != "remove" {
		t.Errorf("index should drop the item, last op %q", last.op)
	}

	h.clock.Advance(7 * time.Second)
	if err := h.coord.Undo(ctx, br.UndoID); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}

	restored, ok := h.store.Get("1")
	if !ok || !reflect.DeepEqual(original, restored) {
		t.Errorf("restored item = %+v, want %+v", restored, original)
	}
	if last, _ := h.index.lastFor("1"); last.op != "add" {
		t.Errorf("index should re-add the item, last op %q", last.op)
	}

	h.clock.Advance(time.Minute)
	if n := h.disk.count("delete", "1"); n != 0 {
		t.Errorf("DeleteFile called %d times after undo", n)
	}
}

func TestBatchDelete_FinalizedOncePerID(t *testing.T) {
	h := newHarness(WithUndoWindow(8 * time.Second))
	ctx := context.Background()

	br := h.coord.BatchDelete(ctx, []string{"1", "2", "2"})
	assertAccounting(t, br)
	if br.Total != 3 {
		t.Fatalf("duplicates should pass through: %+v", br)
	}

	h.clock.Advance(8 * time.Second)
	h.clock.Advance(time.Minute)

	for _, id := range []string{"1", "2"} {
		if n := h.disk.count("delete", id); n != 1 {
			t.Errorf("DeleteFile(%s) called %d times, want 1", id, n)
		}
		if _, ok := h.store.Get(id); ok {
			t.Errorf("item %s reappeared after finalize", id)
		}
	}
	if len(h.coord.Pending()) != 0 {
		t.Error("entry should be consumed by finalize")
	}

	if err := h.coord.Undo(ctx, br.UndoID); err != nil {
		t.Errorf("undo after finalize should be a no-op, got %v", err)
	}
	if _, ok := h.store.Get("1"); ok {
		t.Error("undo after finalize must not restore")
	}
}

func TestBatchDelete_FinalizeFailureRestores(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	h.disk.fail["2"] = domain.DiskResult{Success: false, Message: "read-only filesystem", Code: domain.CodeIO}
	original, _ := h.store.Get("2")

	h.coord.BatchDelete(ctx, []string{"1", "2"})
	h.clock.Advance(DefaultUndoWindow)

	if _, ok := h.store.Get("1"); ok {
		t.Error("item 1 should be gone")
	}
	restored, ok := h.store.Get("2")
	if !ok || !reflect.DeepEqual(original, restored) {
		t.Errorf("item 2 should be restored exactly, got %+v", restored)
	}

	notes := h.notifier.all()
	last := notes[len(notes)-1]
	if last.Level != domain.LevelError || !strings.Contains(last.Message, "Delete failed") {
		t.Errorf("expected a delete failed notice, got %+v", last)
	}
	if !strings.Contains(notes[0].Message, "undo available for 8s") {
		t.Errorf("delete notice should announce the undo window, got %q", notes[0].Message)
	}
}

func TestBatchDelete_InjectedFinalizeFailure(t *testing.T) {
	h := newHarness(WithFailureInjector(FixedRate(1)))
	ctx := context.Background()

	br := h.coord.BatchDelete(ctx, []string{"3"})
	if br.Success != 1 {
		t.Fatalf("hiding is not subject to injection: %+v", br)
	}
	h.clock.Advance(DefaultUndoWindow)

	if _, ok := h.store.Get("3"); !ok {
		t.Error("item should be restored after a simulated finalize failure")
	}
}

func TestDeleteOne(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	res := h.coord.DeleteOne(ctx, "nope")
	if res.Success || res.Code != domain.CodeNotFound {
		t.Errorf("unknown id should fail with NOT_FOUND, got %+v", res)
	}

	res = h.coord.DeleteOne(ctx, "3")
	if !res.Success || !res.Deferred || res.UndoID == "" {
		t.Fatalf("unexpected result %+v", res)
	}
	pending := h.coord.Pending()
	if len(pending) != 1 || pending[0].Kind != domain.KindDelete || pending[0].Timeout != DefaultUndoWindow {
		t.Errorf("unexpected pending entries %+v", pending)
	}
}

func TestClose_FlushesPendingDeletes(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.coord.BatchDelete(ctx, []string{"1", "3"})
	if h.disk.count("delete", "") != 0 {
		t.Fatal("nothing should be deleted before the window ends")
	}

	if err := h.coord.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n := h.disk.count("delete", ""); n != 2 {
		t.Errorf("Close() finalized %d files, want 2", n)
	}

	h.clock.Advance(time.Hour)
	if n := h.disk.count("delete", ""); n != 2 {
		t.Errorf("timer fired after flush, %d deletes", n)
	}
}
