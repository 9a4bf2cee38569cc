package main

import (
	"github.com/spf13/cobra"

	"github.com/atakanttl/tvm/internal/inventory"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove installed Terraform versions",
}

var removeUnusedCmd = &cobra.Command{
	Use:   "unused",
	Short: "Remove every installed version except the active one",
	Long: `Delete all installed versions other than the symlink's current target.
Fails when no version is active, since there would be nothing to keep.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := managedDir()
		if err != nil {
			return err
		}

		return inventory.NewStore(dir).RemoveUnused()
	},
}

var removeAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Remove all installed versions and the active symlink",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := managedDir()
		if err != nil {
			return err
		}

		return inventory.NewStore(dir).RemoveAll()
	},
}

func init() {
	removeCmd.AddCommand(removeUnusedCmd)
	removeCmd.AddCommand(removeAllCmd)
}
