package main

import (
	"github.com/spf13/cobra"
)

var installSkipVerify bool

var installCmd = &cobra.Command{
	Use:   "install <version>...",
	Short: "Download and install one or more Terraform versions",
	Long: `Download the release archive for each version, extract the binary, and
store it under a version-qualified name in the managed directory.

Versions are processed strictly in order; the batch stops at the first
failure. Installing a version that already exists prompts for confirmation
before downloading it again.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, _, err := newManager(installSkipVerify)
		if err != nil {
			return err
		}

		return manager.Install(cmd.Context(), args...)
	},
}

func init() {
	installCmd.Flags().BoolVar(&installSkipVerify, "skip-verify", false, "Skip SHA256SUMS verification of downloaded archives")
}
