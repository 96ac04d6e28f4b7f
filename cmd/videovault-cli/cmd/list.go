package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

var (
	listRoot      string
	listRecursive bool
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List videos",
	Long: `List videos, optionally restricted to one root and one directory.

Examples:
  videovault-cli list
  videovault-cli list --root videos holiday
  videovault-cli list -r holiday`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) > 0 {
			dir = args[0]
		}

		listCmd := commands.NewListCommand(GetLibrary().Store, listRoot, dir, listRecursive)
		items, err := listCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, item := range items {
			printItem(item)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := commands.NewGetCommand(GetLibrary().Store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printItem(item)
		return nil
	},
}

func printItem(item domain.Item) {
	fmt.Printf("%s  %s  %s:%s\n", item.ID, item.DisplayName, item.RootKey, item.Path())
}

func init() {
	listCmd.Flags().StringVar(&listRoot, "root", "", "only list this root")
	listCmd.Flags().BoolVarP(&listRecursive, "recursive", "r", false, "include subdirectories")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
}
