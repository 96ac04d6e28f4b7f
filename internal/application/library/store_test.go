package library

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"videovault/internal/domain"
)

type fakeCatalog struct {
	mu      sync.Mutex
	items   map[string]domain.Item
	putErr  error
	deletes int
}

func newFakeCatalog(items ...domain.Item) *fakeCatalog {
	c := &fakeCatalog{items: make(map[string]domain.Item)}
	for _, item := range items {
		c.items[item.ID] = item
	}
	return c
}

func (c *fakeCatalog) Load(ctx context.Context) ([]domain.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Item
	for _, item := range c.items {
		out = append(out, item)
	}
	return out, nil
}

func (c *fakeCatalog) Put(ctx context.Context, items []domain.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	for _, item := range items {
		c.items[item.ID] = item
	}
	return nil
}

func (c *fakeCatalog) Delete(ctx context.Context, ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	for _, id := range ids {
		delete(c.items, id)
	}
	return nil
}

func (c *fakeCatalog) Close() error { return nil }

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "1", DisplayName: "One", Filename: "one.mp4", Dir: "movies/", RootKey: "main", Categories: []string{"a"}},
		{ID: "2", DisplayName: "Two", Filename: "two.mkv", Dir: "", RootKey: "main"},
		{ID: "3", DisplayName: "Three", Filename: "three.avi", Dir: "shows/s1/", RootKey: "ext"},
	}
}

func TestStore_InsertSkipsExisting(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	inserted := s.Insert(ctx, sampleItems())
	if len(inserted) != 3 {
		t.Fatalf("expected 3 inserted, got %d", len(inserted))
	}

	again := s.Insert(ctx, []domain.Item{{ID: "1", DisplayName: "Other"}, {ID: "4", DisplayName: "Four"}})
	if len(again) != 1 || again[0].ID != "4" {
		t.Errorf("expected only id 4 inserted, got %+v", again)
	}

	got, _ := s.Get("1")
	if got.DisplayName != "One" {
		t.Errorf("existing item was overwritten: %q", got.DisplayName)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestStore_ApplyFields(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Insert(ctx, sampleItems())

	updated := s.ApplyFields(ctx, map[string]domain.Fields{
		"1":       {DisplayName: "Uno", Dir: "archive/", Filename: "uno.mp4", RootKey: "main"},
		"missing": {DisplayName: "ghost"},
	})
	if len(updated) != 1 {
		t.Fatalf("expected 1 updated item, got %d", len(updated))
	}

	got, ok := s.Get("1")
	if !ok {
		t.Fatal("item 1 missing")
	}
	if got.Path() != "archive/uno.mp4" || got.DisplayName != "Uno" {
		t.Errorf("unexpected item after apply: %+v", got)
	}
	if !reflect.DeepEqual(got.Categories, []string{"a"}) {
		t.Errorf("metadata lost: %+v", got.Categories)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("unknown id must not be created")
	}
}

func TestStore_RemoveAndList(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Insert(ctx, sampleItems())

	removed := s.Remove(ctx, []string{"2", "nope"})
	if len(removed) != 1 || removed[0].ID != "2" {
		t.Fatalf("unexpected removed: %+v", removed)
	}

	list := s.List()
	var ids []string
	for _, item := range list {
		ids = append(ids, item.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "3"}) {
		t.Errorf("List() ids = %v, want [1 3]", ids)
	}
}

func TestStore_ReturnedItemsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Insert(ctx, sampleItems())

	got, _ := s.Get("1")
	got.DisplayName = "changed"
	got.Categories[0] = "changed"

	again, _ := s.Get("1")
	if again.DisplayName != "One" || again.Categories[0] != "a" {
		t.Errorf("store was modified through a returned copy: %+v", again)
	}
}

func TestStore_FindByPath(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Insert(ctx, sampleItems())

	tests := []struct {
		name    string
		rootKey string
		path    string
		wantID  string
		wantOK  bool
	}{
		{name: "nested", rootKey: "main", path: "movies/one.mp4", wantID: "1", wantOK: true},
		{name: "root level", rootKey: "main", path: "two.mkv", wantID: "2", wantOK: true},
		{name: "wrong root", rootKey: "ext", path: "two.mkv", wantOK: false},
		{name: "missing", rootKey: "main", path: "none.mp4", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.FindByPath(tt.rootKey, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("FindByPath() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("FindByPath() id = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestStore_UpsertCountsNew(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Insert(ctx, sampleItems()[:1])

	added := s.Upsert(ctx, sampleItems())
	if added != 2 {
		t.Errorf("Upsert() added = %d, want 2", added)
	}
}

func TestStore_PersistsThroughCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	s := NewStore(WithCatalog(catalog))

	s.Insert(ctx, sampleItems())
	s.ApplyFields(ctx, map[string]domain.Fields{"1": {DisplayName: "Uno", Filename: "uno.mp4", Dir: "movies/", RootKey: "main"}})
	s.Remove(ctx, []string{"3"})

	if len(catalog.items) != 2 {
		t.Fatalf("catalog holds %d items, want 2", len(catalog.items))
	}
	if catalog.items["1"].Filename != "uno.mp4" {
		t.Errorf("catalog not updated: %+v", catalog.items["1"])
	}

	reloaded := NewStore(WithCatalog(catalog))
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("reloaded Len() = %d, want 2", reloaded.Len())
	}
}

func TestStore_PersistFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	catalog.putErr = errors.New("disk full")
	s := NewStore(WithCatalog(catalog))

	inserted := s.Insert(ctx, sampleItems())
	if len(inserted) != 3 || s.Len() != 3 {
		t.Errorf("write must succeed in memory, got inserted=%d len=%d", len(inserted), s.Len())
	}
}
