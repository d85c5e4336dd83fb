package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Denizmerty/RenameUtility/pkg/config"
	"github.com/Denizmerty/RenameUtility/pkg/logger"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "renameutil",
	Short: "Batch file renaming tool",
	Long: `RenameUtility renames batches of files using naming patterns with
placeholders, find and replace, case conversion and numbering.

It follows a plan/apply workflow: generate and review a rename plan first,
then apply it. Applied batches can be reverted with undo, and the target
directory can be backed up before any rename runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.SetLevel(cfg.LogLevel)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
