package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Denizmerty/RenameUtility/pkg/dispatch"
	"github.com/Denizmerty/RenameUtility/pkg/pattern"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
	"github.com/Denizmerty/RenameUtility/pkg/profile"
)

var (
	paramsMode              string
	paramsDir               string
	paramsNamingPattern     string
	paramsFindText          string
	paramsReplaceText       string
	paramsFindCaseSensitive bool
	paramsFindUseRegex      bool
	paramsCaseConversion    string
	paramsIncrement         int
	paramsFilenamePattern   string
	paramsFilterExtensions  string
	paramsHighestNumber     int
	paramsLowestNumber      int
	paramsRecursiveScan     bool
	paramsManualFiles       []string
	paramsProfile           string

	planOutFile string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Calculate a rename plan without touching any files",
	Long: `Calculate a rename plan from the given settings and print it for
review. Nothing on disk is modified.

Scan mode walks the target directory, filters files by wildcard pattern,
extension list and number range, and applies the naming pattern to each
match. Manual mode renames an explicit list of files in the order given.

The naming pattern supports placeholders such as <orig_name>, <ext>,
<num>, <index>, <parent_dir>, <file_size>, <modified_date> and
<random:N>.

Examples:
  # Preview renaming all jpg files matching img_*
  renameutil plan --dir ./photos --filename-pattern 'img_*' \
    --filter-extensions jpg --naming-pattern 'pic_<num>' --increment 1

  # Preview a manual batch with an index counter
  renameutil plan --mode manual --file a.docx --file b.docx \
    --naming-pattern 'Doc_<index>_<orig_name>'

  # Save the plan for a later apply
  renameutil plan --dir ./photos --filename-pattern '*' \
    --naming-pattern '<orig_name>_v2' --out plan.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := paramsFromFlags()
		if err != nil {
			return err
		}

		d := dispatch.New(nil)
		req := dispatch.NewPlanRequest(params)
		d.Plan(req)
		results := <-req.Result

		printPlan(results)

		if planOutFile != "" && len(results.RenamePlan) > 0 {
			batch := plan.Batch{
				BatchID:    uuid.New().String(),
				CreatedAt:  time.Now(),
				Increment:  params.Increment,
				Operations: results.RenamePlan,
			}
			if err := batch.SaveToFile(planOutFile); err != nil {
				return fmt.Errorf("failed to save plan: %w", err)
			}
			fmt.Printf("\nPlan saved to %s (batch %s)\n", planOutFile, batch.BatchID)
		}

		if !results.Success {
			return fmt.Errorf("plan calculation reported errors")
		}
		return nil
	},
}

// paramsFromFlags builds InputParams from the shared flag set, loading a
// saved profile first when one was named. Explicit flags are not merged over
// a loaded profile; the profile is used as-is.
func paramsFromFlags() (plan.InputParams, error) {
	if paramsProfile != "" {
		store := profile.NewStore(cfg.DataDir)
		return store.Load(paramsProfile)
	}

	mode := pattern.Mode(paramsMode)
	if mode != pattern.ModeDirectoryScan && mode != pattern.ModeManualSelection {
		return plan.InputParams{}, fmt.Errorf("invalid mode %q (expected scan or manual)", paramsMode)
	}
	caseMode := pattern.CaseMode(paramsCaseConversion)
	switch caseMode {
	case pattern.CaseNoChange, pattern.CaseToUpper, pattern.CaseToLower:
	default:
		return plan.InputParams{}, fmt.Errorf("invalid case conversion %q (expected none, upper or lower)", paramsCaseConversion)
	}

	return plan.InputParams{
		Mode:              mode,
		TargetDirectory:   paramsDir,
		NamingPattern:     paramsNamingPattern,
		FindText:          paramsFindText,
		ReplaceText:       paramsReplaceText,
		FindCaseSensitive: paramsFindCaseSensitive,
		FindUseRegex:      paramsFindUseRegex,
		CaseConversion:    caseMode,
		Increment:         paramsIncrement,
		FilenamePattern:   paramsFilenamePattern,
		FilterExtensions:  paramsFilterExtensions,
		HighestNumber:     paramsHighestNumber,
		LowestNumber:      paramsLowestNumber,
		RecursiveScan:     paramsRecursiveScan,
		ManualFiles:       paramsManualFiles,
	}, nil
}

func printPlan(results plan.OutputResults) {
	for _, msg := range results.GeneralInfo {
		fmt.Println(msg)
	}
	if len(results.RenamePlan) > 0 {
		fmt.Println()
		for _, op := range results.RenamePlan {
			fmt.Printf("  %s -> %s\n", op.OldName, color.New(color.FgCyan).Sprint(op.NewName))
		}
	}
	if len(results.PotentialOverwrites) > 0 {
		fmt.Printf("\n%s\n", color.New(color.FgYellow).Sprint("Skipped (target exists):"))
		for _, ow := range results.PotentialOverwrites {
			fmt.Printf("  %s -> %s\n", ow.SourceFile, ow.TargetFile)
		}
	}
	for _, msg := range results.Warnings {
		fmt.Printf("%s %s\n", color.New(color.FgYellow).Sprint("warning:"), msg)
	}
	for _, msg := range results.Errors {
		fmt.Printf("%s %s\n", color.New(color.FgRed).Sprint("error:"), msg)
	}
}

// addParamsFlags binds the shared planning flag set to a command so plan and
// apply accept identical settings.
func addParamsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&paramsMode, "mode", "scan", "Planning mode: scan (directory scan) or manual (explicit file list)")
	cmd.Flags().StringVarP(&paramsDir, "dir", "d", ".", "Target directory for scan mode")
	cmd.Flags().StringVarP(&paramsNamingPattern, "naming-pattern", "p", "", "Naming pattern with placeholders (required unless --profile is set)")
	cmd.Flags().StringVar(&paramsFindText, "find", "", "Text to find in the generated name")
	cmd.Flags().StringVar(&paramsReplaceText, "replace", "", "Replacement for found text")
	cmd.Flags().BoolVar(&paramsFindCaseSensitive, "find-case-sensitive", false, "Match find text case sensitively")
	cmd.Flags().BoolVar(&paramsFindUseRegex, "find-regex", false, "Treat find text as a regular expression")
	cmd.Flags().StringVar(&paramsCaseConversion, "case", "none", "Case conversion applied to the name stem: none, upper or lower")
	cmd.Flags().IntVarP(&paramsIncrement, "increment", "i", 0, "Amount added to each file's trailing number")
	cmd.Flags().StringVar(&paramsFilenamePattern, "filename-pattern", "", "Wildcard filter for scan mode, e.g. 'img_*' (required in scan mode)")
	cmd.Flags().StringVar(&paramsFilterExtensions, "filter-extensions", "", "Comma separated extension filter, e.g. 'jpg,png'")
	cmd.Flags().IntVar(&paramsHighestNumber, "highest-number", 0, "Upper bound for the trailing-number filter (0 disables)")
	cmd.Flags().IntVar(&paramsLowestNumber, "lowest-number", 0, "Lower bound for the trailing-number filter (0 disables)")
	cmd.Flags().BoolVarP(&paramsRecursiveScan, "recursive", "r", false, "Scan subdirectories recursively")
	cmd.Flags().StringArrayVar(&paramsManualFiles, "file", nil, "File for manual mode; repeat for each file")
	cmd.Flags().StringVar(&paramsProfile, "profile", "", "Load settings from a saved profile instead of flags")
}

func init() {
	rootCmd.AddCommand(planCmd)
	addParamsFlags(planCmd)
	planCmd.Flags().StringVarP(&planOutFile, "out", "o", "", "Save the calculated plan to a JSON file for later apply")
}
