package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Denizmerty/RenameUtility/pkg/backup"
	"github.com/Denizmerty/RenameUtility/pkg/dispatch"
	"github.com/Denizmerty/RenameUtility/pkg/execute"
	"github.com/Denizmerty/RenameUtility/pkg/history"
	"github.com/Denizmerty/RenameUtility/pkg/logger"
	"github.com/Denizmerty/RenameUtility/pkg/pattern"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
	"github.com/Denizmerty/RenameUtility/pkg/undo"
)

var (
	applyPlanFile      string
	applyBackup        bool
	applyBackupContext string
	applyYes           bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Execute a rename plan",
	Long: `Execute a rename plan against the filesystem.

By default the plan is recalculated from the given settings and executed
immediately. With --plan-file a previously saved plan is executed instead,
skipping recalculation.

With --backup the target directory is copied into the backup root before
any rename runs. When the backup fails, no files are renamed.

Successfully applied batches are recorded for undo (the last 10 are kept)
and appended to the history log.

Examples:
  renameutil apply --dir ./photos --filename-pattern 'img_*' \
    --naming-pattern 'pic_<num>' --increment 1 --backup

  renameutil apply --plan-file plan.json --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			operations []plan.RenameOperation
			increment  int
			sourceDir  string
			ctxLabel   string
		)

		if applyPlanFile != "" {
			batch, err := plan.LoadFromFile(applyPlanFile)
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}
			operations = batch.Operations
			increment = batch.Increment
			if len(operations) > 0 {
				sourceDir = filepath.Dir(operations[0].OldFullPath)
			}
		} else {
			params, err := paramsFromFlags()
			if err != nil {
				return err
			}
			results := plan.Calculate(params)
			printPlan(results)
			if !results.Success {
				return fmt.Errorf("plan calculation reported errors, nothing executed")
			}
			operations = results.RenamePlan
			increment = params.Increment
			if params.Mode == pattern.ModeDirectoryScan {
				sourceDir = params.TargetDirectory
			}
		}

		if len(operations) == 0 {
			fmt.Println("Nothing to rename.")
			return nil
		}

		if applyBackup && sourceDir == "" {
			return fmt.Errorf("--backup requires a target directory to back up; manual selections have none")
		}
		ctxLabel = applyBackupContext

		if !applyYes {
			fmt.Printf("\nAbout to rename %d file(s). Continue? [y/N] ", len(operations))
			var answer string
			fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		d := dispatch.New(backup.NewManager(cfg.BackupDir))
		req := dispatch.NewRenameRequest(operations, increment, applyBackup, sourceDir, ctxLabel)
		d.Rename(req)
		outcome := <-req.Result

		if outcome.BackupAttempted {
			if outcome.Backup.Success {
				fmt.Printf("Backup created: %s\n", outcome.Backup.BackupPath)
			} else {
				fmt.Printf("%s %s\n", color.New(color.FgRed).Sprint("Backup failed:"), outcome.Backup.ErrorMessage)
				return fmt.Errorf("backup failed, rename aborted")
			}
		}

		printRenameResult(outcome.Rename)

		if len(outcome.Rename.Successful) > 0 {
			batchID := uuid.New().String()
			store := undo.NewBatchStore(cfg.DataDir)
			if err := store.Push(undo.ExecutedBatch{
				BatchID:    batchID,
				ExecutedAt: time.Now(),
				Operations: outcome.Rename.Successful,
			}); err != nil {
				logger.Warn("failed to record batch for undo: %v", err)
			}
			if err := history.NewWriter(cfg.DataDir).Append(batchID, "RENAME", outcome.Rename.Successful); err != nil {
				logger.Warn("failed to append history: %v", err)
			}
		}

		if !outcome.Rename.OverallSuccess {
			return fmt.Errorf("%d operation(s) failed", len(outcome.Rename.Failed))
		}
		return nil
	},
}

func printRenameResult(result execute.Result) {
	if len(result.Failed) == 0 {
		fmt.Printf("%s %d file(s) renamed.\n", color.New(color.FgGreen).Sprint("Done:"), len(result.Successful))
		return
	}
	fmt.Printf("%s %d renamed, %d failed.\n", color.New(color.FgYellow).Sprint("Partial:"), len(result.Successful), len(result.Failed))
	for _, f := range result.Failed {
		fmt.Printf("  %s %s: %s\n", color.New(color.FgRed).Sprint("failed:"), f.Name, f.Message)
	}
}

func init() {
	rootCmd.AddCommand(applyCmd)
	addParamsFlags(applyCmd)
	applyCmd.Flags().StringVar(&applyPlanFile, "plan-file", "", "Execute a previously saved plan instead of recalculating")
	applyCmd.Flags().BoolVarP(&applyBackup, "backup", "b", false, "Back up the target directory before renaming")
	applyCmd.Flags().StringVar(&applyBackupContext, "backup-context", "", "Label for the backup folder name (default: directory name)")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Skip the confirmation prompt")
}
