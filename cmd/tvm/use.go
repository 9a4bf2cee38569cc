package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atakanttl/tvm/internal/binary"
)

var useSkipVerify bool

var useCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Activate a Terraform version",
	Long: `Point the terraform symlink in the managed directory at the given
version, downloading it first if it is not installed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, dir, err := newManager(useSkipVerify)
		if err != nil {
			return err
		}

		if err := manager.Use(cmd.Context(), args[0]); err != nil {
			return err
		}

		if !binary.OnSearchPath(dir) {
			fmt.Println()
			fmt.Println("Warning: tvm directory is not in PATH.")
			printPathHint(dir)
		}

		return nil
	},
}

func init() {
	useCmd.Flags().BoolVar(&useSkipVerify, "skip-verify", false, "Skip SHA256SUMS verification of downloaded archives")
}
