package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atakanttl/tvm/internal/inventory"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed Terraform versions",
	Long: `Show every installed version in descending filename order and mark the
active one. The ordering is lexicographic, not semantic-version aware.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := managedDir()
		if err != nil {
			return err
		}

		entries, err := inventory.NewStore(dir).List()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ACTIVE\tVERSION")
		for _, entry := range entries {
			mark := ""
			if entry.Active {
				mark = "  *"
			}
			fmt.Fprintf(w, "%s\t%s\n", mark, entry.Name)
		}

		return w.Flush()
	},
}
