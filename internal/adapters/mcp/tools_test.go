package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"videovault/internal/application/library"
	"videovault/internal/domain"
)

type fakeMutator struct {
	lastIDs  []string
	lastOpts domain.BatchRenameOptions
	lastDisk domain.DiskOptions
	undone   []string
}

func (m *fakeMutator) RenameOne(ctx context.Context, id, newBaseName string, applyTo domain.ApplyTo, opts domain.DiskOptions) domain.ItemResult {
	m.lastIDs = []string{id}
	m.lastDisk = opts
	return domain.ItemResult{PerItemResult: domain.PerItemResult{ID: id, Success: true}, UndoID: "u-rename"}
}

func (m *fakeMutator) BatchRename(ctx context.Context, ids []string, opts domain.BatchRenameOptions) domain.BatchResult {
	m.lastIDs = ids
	m.lastOpts = opts
	var results []domain.PerItemResult
	for _, id := range ids {
		results = append(results, domain.PerItemResult{ID: id, Success: id != "bad", Error: "Simulated failure"})
	}
	return domain.NewBatchResult(results)
}

func (m *fakeMutator) MoveOne(ctx context.Context, id, targetDir string, opts domain.DiskOptions) domain.ItemResult {
	return domain.ItemResult{PerItemResult: domain.PerItemResult{ID: id, Success: true}}
}

func (m *fakeMutator) BatchMove(ctx context.Context, ids []string, targetDir string, opts domain.DiskOptions) domain.BatchResult {
	m.lastIDs = ids
	m.lastDisk = opts
	return domain.BatchResult{}
}

func (m *fakeMutator) DeleteOne(ctx context.Context, id string) domain.ItemResult {
	return domain.ItemResult{PerItemResult: domain.PerItemResult{ID: id, Success: true}, UndoID: "u-delete", Deferred: true}
}

func (m *fakeMutator) BatchDelete(ctx context.Context, ids []string) domain.BatchResult {
	return domain.BatchResult{}
}

func (m *fakeMutator) Undo(ctx context.Context, undoID string) error {
	m.undone = append(m.undone, undoID)
	return nil
}

func (m *fakeMutator) Pending() []domain.UndoEntry {
	return []domain.UndoEntry{{UndoID: "u-delete", Kind: domain.KindDelete, Description: "Delete 1 item"}}
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func testServices() (Services, *fakeMutator) {
	store := library.NewStore()
	store.Insert(context.Background(), []domain.Item{
		{ID: "1", DisplayName: "Summer Beach", Filename: "beach.mp4", Dir: "holiday/", RootKey: "main"},
		{ID: "2", DisplayName: "City Lights", Filename: "city.avi", RootKey: "main"},
	})
	m := &fakeMutator{}
	return Services{Mutator: m, Items: store}, m
}

func TestListHandler(t *testing.T) {
	svc, _ := testServices()
	text, isErr := call(t, listHandler(svc), map[string]any{"dir": "holiday"})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "1  Summer Beach  main:holiday/beach.mp4") || strings.Contains(text, "City") {
		t.Errorf("list output = %q", text)
	}
}

func TestSearchHandler(t *testing.T) {
	svc, _ := testServices()

	text, isErr := call(t, searchHandler(svc), map[string]any{})
	if !isErr || !strings.Contains(text, "query is required") {
		t.Errorf("missing query: %q", text)
	}

	text, _ = call(t, searchHandler(svc), map[string]any{"query": "beach"})
	if !strings.HasPrefix(text, "1  Summer Beach") {
		t.Errorf("search output = %q", text)
	}
}

func TestRenameHandler(t *testing.T) {
	svc, m := testServices()
	text, isErr := call(t, renameHandler(svc), map[string]any{
		"id":                "1",
		"new_name":          "Sunset",
		"conflict_strategy": "keep_both",
	})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, `"undoId": "u-rename"`) {
		t.Errorf("rename output = %q", text)
	}
	if m.lastDisk.ConflictStrategy != domain.ConflictKeepBoth {
		t.Errorf("conflict strategy not passed: %+v", m.lastDisk)
	}
}

func TestDiskOptions_ConflictStrategy(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want domain.ConflictStrategy
	}{
		{name: "absent uses default", arg: nil, want: domain.ConflictDefault},
		{name: "explicit fail", arg: "fail", want: domain.ConflictFail},
		{name: "keep both", arg: "keep_both", want: domain.ConflictKeepBoth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req mcp.CallToolRequest
			args := map[string]any{}
			if tt.arg != nil {
				args["conflict_strategy"] = tt.arg
			}
			req.Params.Arguments = args
			if got := diskOptions(req).ConflictStrategy; got != tt.want {
				t.Errorf("ConflictStrategy = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenameHandler_Validation(t *testing.T) {
	svc, _ := testServices()
	text, isErr := call(t, renameHandler(svc), map[string]any{"id": "1"})
	if !isErr || !strings.Contains(text, "new name is required") {
		t.Errorf("expected validation error, got %q", text)
	}
}

func TestBatchRenameHandler(t *testing.T) {
	svc, m := testServices()
	text, isErr := call(t, batchRenameHandler(svc), map[string]any{
		"ids":        []any{"1", "bad"},
		"prefix":     "Ep",
		"pad_digits": float64(2),
	})
	if !isErr {
		t.Errorf("partial failure should be reported as an error result: %q", text)
	}
	if !strings.HasPrefix(text, "Renamed 1 of 2 items") {
		t.Errorf("batch rename output = %q", text)
	}
	if len(m.lastIDs) != 2 || m.lastOpts.Prefix != "Ep" || m.lastOpts.PadDigits != 2 || m.lastOpts.StartIndex != 1 {
		t.Errorf("options not passed: ids=%v opts=%+v", m.lastIDs, m.lastOpts)
	}
}

func TestUndoAndPendingHandlers(t *testing.T) {
	svc, m := testServices()

	text, _ := call(t, pendingUndoHandler(svc), nil)
	if !strings.Contains(text, "u-delete  delete  Delete 1 item") {
		t.Errorf("pending output = %q", text)
	}

	text, isErr := call(t, undoHandler(svc), map[string]any{"undo_id": "u-delete"})
	if isErr || text != "Undid u-delete" {
		t.Errorf("undo output = %q", text)
	}
	if len(m.undone) != 1 {
		t.Errorf("undo not called: %v", m.undone)
	}
}
