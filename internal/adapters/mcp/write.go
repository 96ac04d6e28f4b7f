package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// RegisterWriteTools adds all mutating library tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(renameTool(), renameHandler(svc))
	s.AddTool(batchRenameTool(), batchRenameHandler(svc))
	s.AddTool(moveTool(), moveHandler(svc))
	s.AddTool(batchMoveTool(), batchMoveHandler(svc))
	s.AddTool(deleteTool(), deleteHandler(svc))
	s.AddTool(batchDeleteTool(), batchDeleteHandler(svc))
	s.AddTool(undoTool(), undoHandler(svc))
}

func idsParam() mcp.ToolOption {
	return mcp.WithArray("ids",
		mcp.Description("Video ids"),
		mcp.Required(),
		mcp.Items(map[string]any{"type": "string"}),
	)
}

func diskParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithBoolean("overwrite",
			mcp.Description("Replace an existing file at the target"),
		),
		mcp.WithString("conflict_strategy",
			mcp.Description("What to do when the target exists. Defaults to the configured strategy."),
			mcp.Enum("fail", "keep_both"),
		),
	}
}

func diskOptions(req mcp.CallToolRequest) domain.DiskOptions {
	opts := domain.DiskOptions{Overwrite: req.GetBool("overwrite", false)}
	switch req.GetString("conflict_strategy", "") {
	case string(domain.ConflictKeepBoth):
		opts.ConflictStrategy = domain.ConflictKeepBoth
	case string(domain.ConflictFail):
		opts.ConflictStrategy = domain.ConflictFail
	}
	return opts
}

// --- rename ---

func renameTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Rename a video. The file keeps its extension. Returns an undo id."),
		mcp.WithString("id",
			mcp.Description("Video id"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New base name without extension"),
			mcp.Required(),
		),
		mcp.WithString("apply_to",
			mcp.Description("Which name to change (default both)"),
			mcp.Enum("displayName", "filename", "both"),
		),
	}
	return mcp.NewTool("rename", append(opts, diskParams()...)...)
}

func renameHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameCommand(svc.Mutator,
			req.GetString("id", ""),
			req.GetString("new_name", ""),
			req.GetString("apply_to", ""),
		)
		cmd.Disk = diskOptions(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mutationResult(result)
	}
}

// --- batch_rename ---

func batchRenameTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Rename several videos with a numbering pattern: prefix + zero-padded number + optional original name + suffix."),
		idsParam(),
		mcp.WithString("prefix", mcp.Description("Text before the number")),
		mcp.WithString("suffix", mcp.Description("Text after the name")),
		mcp.WithNumber("start_index", mcp.Description("First number (default 1)")),
		mcp.WithNumber("pad_digits", mcp.Description("Zero-pad numbers to this width")),
		mcp.WithString("transform",
			mcp.Description("Case transformation"),
			mcp.Enum("none", "lower", "upper", "title"),
		),
		mcp.WithString("apply_to",
			mcp.Description("Which name to change (default both)"),
			mcp.Enum("displayName", "filename", "both"),
		),
		mcp.WithBoolean("keep_original", mcp.Description("Append the current display name after the number")),
		mcp.WithString("separator", mcp.Description("Separator before the original name (default \" - \")")),
	}
	return mcp.NewTool("batch_rename", append(opts, diskParams()...)...)
}

func batchRenameHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := domain.BatchRenameOptions{
			Prefix:       req.GetString("prefix", ""),
			Suffix:       req.GetString("suffix", ""),
			StartIndex:   req.GetInt("start_index", 1),
			PadDigits:    req.GetInt("pad_digits", 0),
			Transform:    domain.Transform(req.GetString("transform", string(domain.TransformNone))),
			ApplyTo:      domain.ApplyTo(req.GetString("apply_to", string(domain.ApplyToBoth))),
			KeepOriginal: req.GetBool("keep_original", false),
			Separator:    req.GetString("separator", ""),
			Disk:         diskOptions(req),
		}
		cmd := commands.NewBatchRenameCommand(svc.Mutator, req.GetStringSlice("ids", nil), opts)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mutationResult(result)
	}
}

// --- move ---

func moveTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Move a video to another directory of its root. Returns an undo id."),
		mcp.WithString("id",
			mcp.Description("Video id"),
			mcp.Required(),
		),
		mcp.WithString("target_dir",
			mcp.Description("Library-relative target directory, empty for the root"),
			mcp.Required(),
		),
	}
	return mcp.NewTool("move", append(opts, diskParams()...)...)
}

func moveHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveCommand(svc.Mutator, req.GetString("id", ""), req.GetString("target_dir", ""))
		cmd.Disk = diskOptions(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mutationResult(result)
	}
}

// --- batch_move ---

func batchMoveTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Move several videos to one directory."),
		idsParam(),
		mcp.WithString("target_dir",
			mcp.Description("Library-relative target directory, empty for the root"),
			mcp.Required(),
		),
	}
	return mcp.NewTool("batch_move", append(opts, diskParams()...)...)
}

func batchMoveHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewBatchMoveCommand(svc.Mutator, req.GetStringSlice("ids", nil), req.GetString("target_dir", ""))
		cmd.Disk = diskOptions(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mutationResult(result)
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a video. It disappears immediately; the file is removed when the undo window closes unless undo is called with the returned undo id."),
		mcp.WithString("id",
			mcp.Description("Video id"),
			mcp.Required(),
		),
	)
}

func deleteHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(svc.Mutator, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mutationResult(result)
	}
}

// --- batch_delete ---

func batchDeleteTool() mcp.Tool {
	return mcp.NewTool("batch_delete",
		mcp.WithDescription("Delete several videos with one undo id."),
		idsParam(),
	)
}

func batchDeleteHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewBatchDeleteCommand(svc.Mutator, req.GetStringSlice("ids", nil)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mutationResult(result)
	}
}

// --- undo ---

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Revert a rename, move or delete by its undo id. Unknown or used ids do nothing."),
		mcp.WithString("undo_id",
			mcp.Description("Undo id returned by a mutation"),
			mcp.Required(),
		),
	)
}

func undoHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewUndoCommand(svc.Mutator, req.GetString("undo_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// RegisterPing adds a health check tool
func RegisterPing(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)
}

