package cmd

import (
	"github.com/spf13/cobra"

	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

var (
	renameApplyTo  string
	renameKeepBoth bool

	batchOpts     domain.BatchRenameOptions
	batchApplyTo  string
	batchTransform string
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a video",
	Long: `Rename a video's display name, its file, or both. The file keeps its
extension.

Examples:
  videovault-cli rename 0190a1b2 "Summer at the beach"
  videovault-cli rename 0190a1b2 "Beach" --apply-to displayName`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		renameCmd := commands.NewRenameCommand(GetLibrary().Mutator, args[0], args[1], renameApplyTo)
		renameCmd.Disk = diskOptions(renameKeepBoth)
		result, err := renameCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		return report(result)
	},
}

var batchRenameCmd = &cobra.Command{
	Use:   "batch-rename <id>...",
	Short: "Rename several videos with a numbered pattern",
	Long: `Give each video prefix + number [+ separator + original name] + suffix,
numbered in argument order.

Examples:
  videovault-cli batch-rename a b c --prefix "S01E" --pad 2
  videovault-cli batch-rename a b --prefix "Trip " --keep-original --separator " - "`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := batchOpts
		opts.ApplyTo = domain.ApplyTo(batchApplyTo)
		opts.Transform = domain.Transform(batchTransform)
		opts.Disk = diskOptions(renameKeepBoth)

		result, err := commands.NewBatchRenameCommand(GetLibrary().Mutator, args, opts).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return report(result)
	},
}

func init() {
	renameCmd.Flags().StringVar(&renameApplyTo, "apply-to", "both", "what to rename: displayName, filename or both")
	renameCmd.Flags().BoolVar(&renameKeepBoth, "keep-both", false, "pick a free name instead of failing when the target exists")

	f := batchRenameCmd.Flags()
	f.StringVar(&batchOpts.Prefix, "prefix", "", "text before the number")
	f.StringVar(&batchOpts.Suffix, "suffix", "", "text after the name")
	f.IntVar(&batchOpts.StartIndex, "start", 1, "first number")
	f.IntVar(&batchOpts.PadDigits, "pad", 0, "zero-pad numbers to this many digits")
	f.BoolVar(&batchOpts.KeepOriginal, "keep-original", false, "append the current name")
	f.StringVar(&batchOpts.Separator, "separator", "", "text between number and original name")
	f.StringVar(&batchTransform, "transform", "none", "case transform: none, lower, upper or title")
	f.StringVar(&batchApplyTo, "apply-to", "both", "what to rename: displayName, filename or both")
	f.BoolVar(&renameKeepBoth, "keep-both", false, "pick a free name instead of failing when the target exists")

	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(batchRenameCmd)
}
