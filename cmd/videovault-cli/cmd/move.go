package cmd

import (
	"github.com/spf13/cobra"

	"videovault/internal/application/commands"
)

var moveKeepBoth bool

var moveCmd = &cobra.Command{
	Use:   "move <id> <target-dir>",
	Short: "Move a video to another directory",
	Long: `Move a video to a directory relative to its library root. Missing
directories are created.

Examples:
  videovault-cli move 0190a1b2 holiday/2024
  videovault-cli move 0190a1b2 "" --keep-both   # Move to the root`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		moveCmd := commands.NewMoveCommand(GetLibrary().Mutator, args[0], args[1])
		moveCmd.Disk = diskOptions(moveKeepBoth)
		result, err := moveCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		return report(result)
	},
}

var batchMoveCmd = &cobra.Command{
	Use:   "batch-move <target-dir> <id>...",
	Short: "Move several videos to one directory",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		moveCmd := commands.NewBatchMoveCommand(GetLibrary().Mutator, args[1:], args[0])
		moveCmd.Disk = diskOptions(moveKeepBoth)
		result, err := moveCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		return report(result)
	},
}

func init() {
	moveCmd.Flags().BoolVar(&moveKeepBoth, "keep-both", false, "pick a free name instead of failing when the target exists")
	batchMoveCmd.Flags().BoolVar(&moveKeepBoth, "keep-both", false, "pick a free name instead of failing when the target exists")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(batchMoveCmd)
}
