package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"videovault/internal/application/commands"
	"videovault/internal/domain"
	"videovault/internal/ports"
)

// Services are the application pieces the tools call into
type Services struct {
	Mutator commands.Mutator
	Items   commands.ItemLister
	Index   ports.SearchQuerier // may be nil
	Logger  *slog.Logger
}

// RegisterReadTools adds all read-only library tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(listTool(), listHandler(svc))
	s.AddTool(searchTool(), searchHandler(svc))
	s.AddTool(pendingUndoTool(), pendingUndoHandler(svc))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List videos in the library with their ids. Optionally restrict to one root and directory."),
		mcp.WithString("root",
			mcp.Description("Root key to list (omit for all roots)"),
		),
		mcp.WithString("dir",
			mcp.Description("Library-relative directory (e.g. holiday/2024)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Include subdirectories of dir"),
		),
	)
}

func listHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListCommand(svc.Items,
			req.GetString("root", ""),
			req.GetString("dir", ""),
			req.GetBool("recursive", false),
		)
		items, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(items, formatItem)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search videos by name or path. Returns matching videos with their ids."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 50)"),
		),
	)
}

func searchHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		cmd := commands.NewSearchCommand(svc.Index, svc.Items, svc.Logger, query)
		cmd.Limit = req.GetInt("limit", commands.DefaultSearchLimit)
		hits, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(hits) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, h := range hits {
			fmt.Fprintf(&sb, "%s  %s  %s\n", h.ID, h.Name, h.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- pending_undo ---

func pendingUndoTool() mcp.Tool {
	return mcp.NewTool("pending_undo",
		mcp.WithDescription("List mutations that can still be undone, oldest first."),
	)
}

func pendingUndoHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := commands.NewPendingUndoCommand(svc.Mutator).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatUndoEntry)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatItem(i domain.Item) string {
	return fmt.Sprintf("%s  %s  %s:%s", i.ID, i.DisplayName, i.RootKey, i.Path())
}

func formatUndoEntry(e domain.UndoEntry) string {
	line := fmt.Sprintf("%s  %s  %s", e.UndoID, e.Kind, e.Description)
	if exp := e.ExpiresAt(); !exp.IsZero() {
		line += "  expires " + exp.Format("15:04:05")
	}
	return line
}

// mutationResult reports the summary line followed by per-item results as JSON
func mutationResult(res *commands.MutationResult) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(res.BatchResult, "", "  ")
	if err != nil {
		return toolError(err)
	}
	text := res.Message + "\n" + string(data)
	if !res.OK() {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}
