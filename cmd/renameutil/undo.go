package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Denizmerty/RenameUtility/pkg/dispatch"
	"github.com/Denizmerty/RenameUtility/pkg/history"
	"github.com/Denizmerty/RenameUtility/pkg/logger"
	"github.com/Denizmerty/RenameUtility/pkg/undo"
)

var undoYes bool

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the most recently applied rename batch",
	Long: `Revert the most recently applied rename batch by renaming each file
back to its original name, in reverse execution order.

The last 10 applied batches are kept; each undo consumes the newest one.
A file that was renamed or removed since the batch ran is skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := undo.NewBatchStore(cfg.DataDir)
		batch, err := store.Pop()
		if err != nil {
			return err
		}

		fmt.Printf("Reverting batch %s (%d file(s), applied %s)\n",
			batch.BatchID, len(batch.Operations), batch.ExecutedAt.Format("2006-01-02 15:04:05"))

		if !undoYes {
			fmt.Print("Continue? [y/N] ")
			var answer string
			fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" && answer != "yes" {
				// Put the batch back so a later undo can still find it.
				if err := store.Push(batch); err != nil {
					logger.Warn("failed to restore undo batch: %v", err)
				}
				fmt.Println("Aborted.")
				return nil
			}
		}

		d := dispatch.New(nil)
		req := dispatch.NewUndoRequest(batch.Operations)
		d.Undo(req)
		result := <-req.Result

		if len(result.Failed) == 0 {
			fmt.Printf("%s %d file(s) reverted.\n", color.New(color.FgGreen).Sprint("Done:"), len(result.Successful))
		} else {
			fmt.Printf("%s %d reverted, %d failed.\n",
				color.New(color.FgYellow).Sprint("Partial:"), len(result.Successful), len(result.Failed))
			for _, f := range result.Failed {
				fmt.Printf("  %s %s: %s\n", color.New(color.FgRed).Sprint("failed:"), f.Name, f.Message)
			}
		}

		if len(result.Successful) > 0 {
			if err := history.NewWriter(cfg.DataDir).Append(batch.BatchID, "UNDO", batch.Operations); err != nil {
				logger.Warn("failed to append history: %v", err)
			}
		}

		if !result.OverallSuccess {
			return fmt.Errorf("%d operation(s) failed", len(result.Failed))
		}
		return nil
	},
}

var undoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the batches available for undo",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := undo.NewBatchStore(cfg.DataDir)
		batches, err := store.List()
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Println("No batches available to undo.")
			return nil
		}
		for i, b := range batches {
			fmt.Printf("%d. %s  %s  %d file(s)\n",
				i+1, b.BatchID, b.ExecutedAt.Format("2006-01-02 15:04:05"), len(b.Operations))
		}
		return nil
	},
}

var undoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard all stored undo batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := undo.NewBatchStore(cfg.DataDir).Clear(); err != nil {
			return err
		}
		fmt.Println("Undo history cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
	undoCmd.AddCommand(undoListCmd)
	undoCmd.AddCommand(undoClearCmd)

	undoCmd.Flags().BoolVarP(&undoYes, "yes", "y", false, "Skip the confirmation prompt")
}
