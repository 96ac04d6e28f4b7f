package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"videovault/internal/application"
	"videovault/internal/application/library"
	"videovault/internal/domain"
)

type fakeMutator struct {
	mu      sync.Mutex
	calls   []string
	result  domain.ItemResult
	batch   domain.BatchResult
	pending []domain.UndoEntry
	undoErr error
	undone  []string
}

func (m *fakeMutator) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *fakeMutator) RenameOne(ctx context.Context, id, newBaseName string, applyTo domain.ApplyTo, opts domain.DiskOptions) domain.ItemResult {
	m.record("rename:" + id + ":" + newBaseName + ":" + string(applyTo))
	return m.result
}

func (m *fakeMutator) BatchRename(ctx context.Context, ids []string, opts domain.BatchRenameOptions) domain.BatchResult {
	m.record("batch-rename:" + opts.Prefix)
	return m.batch
}

func (m *fakeMutator) MoveOne(ctx context.Context, id, targetDir string, opts domain.DiskOptions) domain.ItemResult {
	m.record("move:" + id + ":" + targetDir)
	return m.result
}

func (m *fakeMutator) BatchMove(ctx context.Context, ids []string, targetDir string, opts domain.DiskOptions) domain.BatchResult {
	m.record("batch-move:" + targetDir)
	return m.batch
}

func (m *fakeMutator) DeleteOne(ctx context.Context, id string) domain.ItemResult {
	m.record("delete:" + id)
	return m.result
}

func (m *fakeMutator) BatchDelete(ctx context.Context, ids []string) domain.BatchResult {
	m.record("batch-delete")
	return m.batch
}

func (m *fakeMutator) Undo(ctx context.Context, undoID string) error {
	m.record("undo:" + undoID)
	m.undone = append(m.undone, undoID)
	return m.undoErr
}

func (m *fakeMutator) Pending() []domain.UndoEntry {
	return m.pending
}

func testStore(t *testing.T, items ...domain.Item) *library.Store {
	t.Helper()
	s := library.NewStore()
	s.Insert(context.Background(), items)
	return s
}

func libraryItems() []domain.Item {
	return []domain.Item{
		{ID: "1", DisplayName: "Summer Beach", Filename: "beach.mp4", Dir: "holiday/", RootKey: "main"},
		{ID: "2", DisplayName: "Winter Forest", Filename: "forest.mkv", Dir: "holiday/2023/", RootKey: "main"},
		{ID: "3", DisplayName: "City Lights", Filename: "city.avi", Dir: "", RootKey: "main"},
		{ID: "4", DisplayName: "Archive Reel", Filename: "reel.mov", Dir: "holiday/", RootKey: "archive"},
	}
}

func TestRenameCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		newName string
		applyTo string
		wantErr bool
		errMsg  string
	}{
		{name: "valid rename", id: "1", newName: "New Name"},
		{name: "valid filename only", id: "1", newName: "New", applyTo: "filename"},
		{name: "empty ID", id: "", newName: "Name", wantErr: true, errMsg: "ID is required"},
		{name: "empty name", id: "1", newName: "", wantErr: true, errMsg: "new name is required"},
		{name: "whitespace name", id: "1", newName: "   ", wantErr: true, errMsg: "new name is required"},
		{name: "dot name", id: "1", newName: "..", wantErr: true, errMsg: "invalid name"},
		{name: "unknown mode", id: "1", newName: "Name", applyTo: "title", wantErr: true, errMsg: "expected displayName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &RenameCommand{ID: tt.id, NewName: tt.newName, ApplyTo: tt.applyTo}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRenameCommand_Execute(t *testing.T) {
	m := &fakeMutator{result: domain.ItemResult{
		PerItemResult: domain.PerItemResult{ID: "1", Success: true},
		UndoID:        "u1",
	}}

	res, err := NewRenameCommand(m, " 1 ", "Sunset", "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.OK() || res.UndoID != "u1" || res.Total != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Message != "Renamed 1" {
		t.Errorf("Message = %q", res.Message)
	}
	if len(m.calls) != 1 || m.calls[0] != "rename:1:Sunset:both" {
		t.Errorf("calls = %v", m.calls)
	}
}

func TestRenameCommand_ExecuteInvalidDoesNotCallMutator(t *testing.T) {
	m := &fakeMutator{}
	_, err := NewRenameCommand(m, "", "x", "").Execute(context.Background())

	var verr *application.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(m.calls) != 0 {
		t.Errorf("mutator called: %v", m.calls)
	}
}

func TestBatchRenameCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		opts    domain.BatchRenameOptions
		wantErr bool
		errMsg  string
	}{
		{name: "valid", ids: []string{"1", "2"}, opts: domain.BatchRenameOptions{Prefix: "X", StartIndex: 1, PadDigits: 2}},
		{name: "no ids", ids: nil, wantErr: true, errMsg: "at least one ID"},
		{name: "blank id", ids: []string{"1", " "}, wantErr: true, errMsg: "empty ID at position 1"},
		{name: "negative start", ids: []string{"1"}, opts: domain.BatchRenameOptions{StartIndex: -1}, wantErr: true, errMsg: "start index"},
		{name: "too much padding", ids: []string{"1"}, opts: domain.BatchRenameOptions{PadDigits: 20}, wantErr: true, errMsg: "pad digits"},
		{name: "unknown transform", ids: []string{"1"}, opts: domain.BatchRenameOptions{Transform: "snake"}, wantErr: true, errMsg: "unknown transform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBatchRenameCommand(nil, tt.ids, tt.opts).Validate()
			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMoveCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		targetDir string
		wantErr   bool
	}{
		{name: "valid", id: "1", targetDir: "movies/2024"},
		{name: "root dir", id: "1", targetDir: ""},
		{name: "missing id", id: "", targetDir: "movies", wantErr: true},
		{name: "escapes root", id: "1", targetDir: "../outside", wantErr: true},
		{name: "escapes root mid path", id: "1", targetDir: "a/../../b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMoveCommand(nil, tt.id, tt.targetDir).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBatchMoveCommand_ExecuteSummarizesFailures(t *testing.T) {
	m := &fakeMutator{batch: domain.NewBatchResult([]domain.PerItemResult{
		{ID: "1", Success: true},
		{ID: "2", Success: false, Error: "target exists", Code: domain.CodeConflict},
		{ID: "3", Success: false, Error: "Simulated failure", Code: domain.CodeSimulated},
	})}

	res, err := NewBatchMoveCommand(m, []string{"1", "2", "3"}, "archive").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.OK() {
		t.Error("result with failures should not be OK")
	}
	want := "Moved 1 of 3 items; 2: target exists (+1 more)"
	if res.Message != want {
		t.Errorf("Message = %q, want %q", res.Message, want)
	}
}

func TestDeleteCommand_Execute(t *testing.T) {
	m := &fakeMutator{result: domain.ItemResult{
		PerItemResult: domain.PerItemResult{ID: "3", Success: true},
		UndoID:        "d1",
		Deferred:      true,
	}}

	res, err := NewDeleteCommand(m, "3").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.Deferred || res.UndoID != "d1" {
		t.Errorf("unexpected result %+v", res)
	}

	if _, err := NewBatchDeleteCommand(m, nil).Execute(context.Background()); err == nil {
		t.Error("expected validation error for empty batch delete")
	}
}

func TestUndoCommand_Execute(t *testing.T) {
	m := &fakeMutator{pending: []domain.UndoEntry{{UndoID: "u1", Kind: domain.KindRename}}}

	res, err := NewUndoCommand(m, "u1").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Message != "Undid u1" {
		t.Errorf("Message = %q", res.Message)
	}

	res, err = NewUndoCommand(m, "gone").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Message != "Nothing to undo for gone" {
		t.Errorf("Message = %q", res.Message)
	}

	m.undoErr = &application.UndoError{UndoID: "u1", Kind: "rename", Failed: 1, Total: 2}
	_, err = NewUndoCommand(m, "u1").Execute(context.Background())
	if !errors.Is(err, application.ErrUndoFailed) {
		t.Errorf("expected ErrUndoFailed, got %v", err)
	}

	if _, err := NewUndoCommand(m, "").Execute(context.Background()); err == nil {
		t.Error("expected validation error for empty undo id")
	}
}

func TestListCommand_Execute(t *testing.T) {
	store := testStore(t, libraryItems()...)

	tests := []struct {
		name      string
		rootKey   string
		dir       string
		recursive bool
		wantIDs   []string
	}{
		{name: "all ordered by root then path", wantIDs: []string{"4", "3", "2", "1"}},
		{name: "one root", rootKey: "main", wantIDs: []string{"3", "2", "1"}},
		{name: "one directory", rootKey: "main", dir: "holiday", wantIDs: []string{"1"}},
		{name: "recursive directory", rootKey: "main", dir: "/holiday/", recursive: true, wantIDs: []string{"2", "1"}},
		{name: "unknown root", rootKey: "nope", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := NewListCommand(store, tt.rootKey, tt.dir, tt.recursive).Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantIDs))
			}
			for i, item := range items {
				if item.ID != tt.wantIDs[i] {
					t.Errorf("item %d = %s, want %s", i, item.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestGetCommand_Execute(t *testing.T) {
	store := testStore(t, libraryItems()...)

	item, err := NewGetCommand(store, "2").Execute(context.Background())
	if err != nil || item.DisplayName != "Winter Forest" {
		t.Errorf("Execute() = %+v, %v", item, err)
	}

	_, err = NewGetCommand(store, "99").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
