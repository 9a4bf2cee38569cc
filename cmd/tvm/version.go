package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tvm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tvm %s\n", Version)
	},
}
