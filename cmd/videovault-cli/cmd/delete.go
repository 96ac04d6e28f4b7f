package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"videovault/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a video",
	Long: `Delete a video from the library and from disk.

The file is removed once the undo window closes. Press Ctrl+C while the
command waits to restore the video instead.

Examples:
  videovault-cli delete 0190a1b2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteCommand(GetLibrary().Mutator, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return awaitDelete(cmd.Context(), result)
	},
}

var batchDeleteCmd = &cobra.Command{
	Use:   "batch-delete <id>...",
	Short: "Delete several videos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewBatchDeleteCommand(GetLibrary().Mutator, args).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return awaitDelete(cmd.Context(), result)
	},
}

// awaitDelete waits out the undo window. An interrupt during the wait undoes
// the delete.
func awaitDelete(ctx context.Context, result *commands.MutationResult) error {
	reportErr := report(result)
	if result.UndoID == "" {
		return reportErr
	}

	window := GetLibrary().Mutator.UndoWindow()
	fmt.Printf("Removing files in %s, press Ctrl+C to undo\n", window)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-time.After(window):
		return reportErr
	case <-sigCtx.Done():
	}

	undo, err := commands.NewUndoCommand(GetLibrary().Mutator, result.UndoID).Execute(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(undo.Message)
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(batchDeleteCmd)
}
