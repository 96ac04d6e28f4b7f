package cmd

import (
	"fmt"

	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// report prints the outcome of a mutation and turns failures into an error
func report(result *commands.MutationResult) error {
	fmt.Println(result.Message)
	for _, r := range result.Results {
		if r.Success {
			continue
		}
		fmt.Printf("  %s: %s (%s)\n", r.ID, r.Error, r.Code)
	}
	if !result.OK() {
		return fmt.Errorf("%d of %d failed", result.Failed, result.Total)
	}
	return nil
}

// diskOptions reads the shared --keep-both flag
func diskOptions(keepBoth bool) domain.DiskOptions {
	if keepBoth {
		return domain.DiskOptions{ConflictStrategy: domain.ConflictKeepBoth}
	}
	return domain.DiskOptions{}
}
