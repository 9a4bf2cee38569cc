package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atakanttl/tvm/internal/binary"
	"github.com/atakanttl/tvm/internal/platform"
)

var assumeYes bool

var rootCmd = &cobra.Command{
	Use:   "tvm",
	Short: "Terraform version manager",
	Long: `tvm downloads specific Terraform versions into a managed directory
and switches the active one via a symlink.

Commands map to the managed directory's contents:
  install   Download and install one or more versions
  use       Activate a version (downloading it if needed)
  list      Show installed versions and mark the active one
  remove    Delete unused or all installed versions`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command. An operator decline is a clean exit, not an
// error: the original prompt flow quits without failing.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, binary.ErrDeclined) {
			fmt.Println("Quitting.")
			return nil
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Managed directory for terraform binaries (default ~/.tvm)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to all confirmation prompts")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig wires flag > environment > default precedence for the few
// process-level settings. Components never read viper themselves; resolved
// values are passed in explicitly.
func initConfig(cmd *cobra.Command) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	viper.SetDefault("dir", filepath.Join(home, ".tvm"))
	viper.SetDefault("release_url", binary.DefaultBaseURL)
	viper.SetDefault("timeout", binary.DefaultTimeout)

	viper.SetEnvPrefix("TVM")
	viper.AutomaticEnv()

	if err := viper.BindPFlag("dir", cmd.Root().PersistentFlags().Lookup("dir")); err != nil {
		return fmt.Errorf("bind dir flag: %w", err)
	}

	return nil
}

// managedDir resolves the managed directory and creates it on first run,
// printing the PATH hint so freshly activated binaries are reachable.
func managedDir() (string, error) {
	dir := viper.GetString("dir")

	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat managed directory: %w", err)
		}

		fmt.Printf("tvm directory does not exist. Creating the directory %q...\n", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create managed directory: %w", err)
		}
		printPathHint(dir)
	}

	return dir, nil
}

// printPathHint tells the operator how to put the managed directory on PATH.
func printPathHint(dir string) {
	fmt.Println("Please add the tvm directory to the path to use Terraform binaries:")
	fmt.Printf("\texport PATH=\"%s:$PATH\"\n", dir)
}

// confirmer returns the prompt implementation for this invocation.
func confirmer() binary.Confirmer {
	if assumeYes {
		return binary.AutoConfirmer{}
	}
	return binary.NewStdinConfirmer()
}

// newManager builds the installer for the resolved platform and managed
// directory. Platform resolution happens before any network access, so an
// unsupported OS fails here.
func newManager(skipVerify bool) (*binary.Manager, string, error) {
	info, err := platform.NewResolver().Resolve()
	if err != nil {
		return nil, "", err
	}

	dir, err := managedDir()
	if err != nil {
		return nil, "", err
	}

	manager, err := binary.NewManager(binary.Config{
		Dir:          dir,
		PlatformInfo: info,
		BaseURL:      viper.GetString("release_url"),
		Timeout:      viper.GetDuration("timeout"),
		Confirmer:    confirmer(),
		SkipVerify:   skipVerify,
	})
	if err != nil {
		return nil, "", err
	}

	return manager, dir, nil
}
