package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Denizmerty/RenameUtility/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the log of applied and reverted batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		contents, err := history.NewWriter(cfg.DataDir).Read()
		if err != nil {
			return err
		}
		if contents == "" {
			fmt.Println("No history yet.")
			return nil
		}
		fmt.Print(contents)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
