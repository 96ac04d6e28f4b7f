package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"videovault/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search videos by name",
	Long: `Search the index for videos whose name contains every word of the query.

Examples:
  videovault-cli search beach
  videovault-cli search "summer beach" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l := GetLibrary()
		searchCmd := commands.NewSearchCommand(l.Index, l.Store, l.Logger, args[0])
		searchCmd.Limit = searchLimit
		hits, err := searchCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(hits) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%s  %s  %s\n", h.ID, h.Name, h.Path)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", commands.DefaultSearchLimit, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
