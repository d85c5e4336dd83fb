package plan

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Denizmerty/RenameUtility/pkg/logger"
	"github.com/Denizmerty/RenameUtility/pkg/pattern"
)

// candidate is a scanned file retained by all filters, with its parsed
// trailing number when one was needed.
type candidate struct {
	path   string
	number *int
}

// Calculate computes a conflict-checked rename plan from params. Fatal
// precondition failures short-circuit with an empty plan and Success false;
// per-item problems are routed to the appropriate log stream and the batch
// continues. The returned plan never contains identity renames, intra-batch
// target conflicts, or renames onto foreign files that already exist.
func Calculate(params InputParams) OutputResults {
	results := OutputResults{Success: true}

	if params.NamingPattern == "" {
		results.Errors = append(results.Errors, "FATAL: New name pattern cannot be empty.")
		results.Success = false
		return results
	}

	switch params.Mode {
	case pattern.ModeDirectoryScan:
		calculateDirectoryScan(params, &results)
	default:
		calculateManualSelection(params, &results)
	}

	// A fatal precondition may have emptied the plan already; per-item
	// errors logged along the way also veto overall success.
	results.Success = results.Success && len(results.Errors) == 0

	if len(results.RenamePlan) == 0 {
		results.GeneralInfo = append(results.GeneralInfo, emptyPlanSummary(params, &results))
	} else {
		results.GeneralInfo = append(results.GeneralInfo,
			fmt.Sprintf("Calculated %d file(s) to be renamed.", len(results.RenamePlan)))
	}
	return results
}

func calculateDirectoryScan(params InputParams, results *OutputResults) {
	targetDir, err := filepath.Abs(params.TargetDirectory)
	if err != nil {
		targetDir = params.TargetDirectory
	}
	info, statErr := os.Stat(targetDir)
	if statErr != nil || !info.IsDir() {
		msg := fmt.Sprintf("FATAL: Target directory is invalid or inaccessible: %s", params.TargetDirectory)
		if statErr != nil {
			msg += fmt.Sprintf(" (%v)", statErr)
		}
		results.Errors = append(results.Errors, msg)
		results.Success = false
		return
	}
	if params.FilenamePattern == "" {
		results.Errors = append(results.Errors, "FATAL: Filename Pattern cannot be empty in Directory Scan mode.")
		results.Success = false
		return
	}
	if params.LowestNumber > params.HighestNumber && (params.LowestNumber != 0 || params.HighestNumber != 0) {
		results.Errors = append(results.Errors, "FATAL: Lowest Number filter cannot be greater than Highest Number filter.")
		results.Success = false
		return
	}

	nameRegex, err := regexp.Compile("(?i)" + pattern.ConvertWildcardToRegex(params.FilenamePattern))
	if err != nil {
		results.Errors = append(results.Errors, fmt.Sprintf("FATAL: Invalid Filename Pattern (regex error): %v", err))
		results.Success = false
		return
	}

	extFilter := parseExtensionFilter(params.FilterExtensions)
	if extFilter != nil {
		results.GeneralInfo = append(results.GeneralInfo, "Filtering by extensions: "+params.FilterExtensions)
	}

	useNumFilter := params.LowestNumber != 0 || params.HighestNumber != 0
	numberWidth := displayNumberWidth(params)
	needsNumber := useNumFilter ||
		strings.Contains(params.NamingPattern, "<num>") ||
		strings.Contains(params.NamingPattern, "<orig_num>")

	candidates, members, filesChecked := scanDirectory(targetDir, params, nameRegex, extFilter, useNumFilter, needsNumber, results)
	if !filesChecked {
		// Remembered so the summary can distinguish an empty directory
		// from an all-filtered one.
		results.scanSawNoEntries = true
	}

	targetsLower := make(map[string]struct{}, len(candidates))
	for _, cand := range candidates {
		originalName := filepath.Base(cand.path)
		stem, ext := splitFilename(originalName)

		var newNum *int
		if cand.number != nil {
			sum := int64(*cand.number) + int64(params.Increment)
			if sum < math.MinInt32 || sum > math.MaxInt32 {
				results.MissingSourceFiles = append(results.MissingSourceFiles,
					fmt.Sprintf("%s (in %s) (Skipped: Incremented number out of range)", originalName, filepath.Dir(cand.path)))
				results.Success = false
				continue
			}
			n := int(sum)
			newNum = &n
		}

		newName := generateName(params, pattern.Context{
			OriginalName:   originalName,
			Stem:           stem,
			Extension:      ext,
			OriginalNumber: cand.number,
			NewNumber:      newNum,
			NumberWidth:    numberWidth,
			ParentDir:      filepath.Base(filepath.Dir(cand.path)),
			FullPath:       cand.path,
		})

		op, ok := checkOperation(cand.path, originalName, newName, members, targetsLower, results)
		if !ok {
			continue
		}
		op.Number = cand.number
		results.RenamePlan = append(results.RenamePlan, op)
	}
}

func calculateManualSelection(params InputParams, results *OutputResults) {
	if len(params.ManualFiles) == 0 {
		results.Errors = append(results.Errors, "FATAL: No files were added to the list in Manual Selection mode.")
		results.Success = false
		return
	}

	// The whole input list counts as batch members for the foreign-target
	// check: renaming onto another selected file is legal because the batch
	// ordering vacates it.
	members := make(map[string]struct{}, len(params.ManualFiles))
	absFiles := make([]string, 0, len(params.ManualFiles))
	for _, f := range params.ManualFiles {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		absFiles = append(absFiles, abs)
		members[abs] = struct{}{}
	}

	totalFiles := len(absFiles)
	seen := make(map[string]struct{}, totalFiles)
	targetsLower := make(map[string]struct{}, totalFiles)

	for i, currentPath := range absFiles {
		index := i + 1 // position in the user's original list

		if _, dup := seen[currentPath]; dup {
			results.Warnings = append(results.Warnings, "Warning: Skipping duplicate input file: "+currentPath)
			continue
		}
		seen[currentPath] = struct{}{}

		info, err := os.Stat(currentPath)
		if err != nil || !info.Mode().IsRegular() {
			msg := currentPath + " (Skipped: Not a valid file or inaccessible"
			if err != nil {
				msg += fmt.Sprintf(". Error: %v", err)
			}
			results.MissingSourceFiles = append(results.MissingSourceFiles, msg+")")
			continue
		}

		originalName := filepath.Base(currentPath)
		stem, ext := splitFilename(originalName)

		newName := generateName(params, pattern.Context{
			OriginalName: originalName,
			Stem:         stem,
			Extension:    ext,
			Index:        index,
			TotalFiles:   totalFiles,
			ParentDir:    filepath.Base(filepath.Dir(currentPath)),
			FullPath:     currentPath,
		})

		op, ok := checkOperation(currentPath, originalName, newName, members, targetsLower, results)
		if !ok {
			continue
		}
		op.Index = index
		results.RenamePlan = append(results.RenamePlan, op)
	}
}

// checkOperation runs the shared per-candidate validations: empty generated
// name, identity rename, intra-batch target conflict, and foreign on-disk
// target. It reports false when the candidate must be skipped.
func checkOperation(currentPath, originalName, newName string, members, targetsLower map[string]struct{}, results *OutputResults) (RenameOperation, bool) {
	if newName == "" {
		results.Errors = append(results.Errors,
			fmt.Sprintf("Error: Generated new filename is empty for '%s'. Skipped.", originalName))
		results.MissingSourceFiles = append(results.MissingSourceFiles,
			originalName+" (Skipped: Generated name was empty)")
		results.Success = false
		return RenameOperation{}, false
	}

	newFullPath := filepath.Join(filepath.Dir(currentPath), newName)

	if strings.EqualFold(currentPath, newFullPath) {
		results.GeneralInfo = append(results.GeneralInfo,
			fmt.Sprintf("Skipping '%s' (New name is identical to old name, case-insensitively)", originalName))
		return RenameOperation{}, false
	}

	lower := strings.ToLower(newFullPath)
	if _, conflict := targetsLower[lower]; conflict {
		results.Errors = append(results.Errors,
			fmt.Sprintf("Error: Generated new path '%s' conflicts with another generated path in this batch. Skipping '%s'.", newFullPath, originalName))
		results.MissingSourceFiles = append(results.MissingSourceFiles,
			originalName+" (Skipped: Target path conflict within batch)")
		results.Success = false
		return RenameOperation{}, false
	}
	targetsLower[lower] = struct{}{}

	if _, err := os.Stat(newFullPath); err == nil {
		if _, inBatch := members[newFullPath]; !inBatch {
			results.PotentialOverwrites = append(results.PotentialOverwrites, PotentialOverwrite{
				SourceFile: originalName,
				TargetFile: newName,
				TargetPath: newFullPath,
			})
			results.MissingSourceFiles = append(results.MissingSourceFiles,
				fmt.Sprintf("%s (Skipped: Target path '%s' already exists and is not part of this rename batch)", originalName, newFullPath))
			return RenameOperation{}, false
		}
	} else if !os.IsNotExist(err) {
		results.Warnings = append(results.Warnings,
			fmt.Sprintf("Warning: Filesystem error checking target path '%s': %v. Skipping '%s'.", newFullPath, err, originalName))
		results.MissingSourceFiles = append(results.MissingSourceFiles,
			originalName+" (Skipped: Error checking target path)")
		return RenameOperation{}, false
	}

	return RenameOperation{
		OldName:     originalName,
		NewName:     newName,
		OldFullPath: currentPath,
		NewFullPath: newFullPath,
	}, true
}

// scanDirectory walks the target directory and returns the candidates that
// pass the wildcard, extension and numeric filters, sorted by path for
// deterministic planning. Per-entry filesystem errors are logged as warnings
// and do not abort the scan.
func scanDirectory(targetDir string, params InputParams, nameRegex *regexp.Regexp, extFilter map[string]struct{}, useNumFilter, needsNumber bool, results *OutputResults) ([]candidate, map[string]struct{}, bool) {
	if params.RecursiveScan {
		results.GeneralInfo = append(results.GeneralInfo, "Starting recursive directory scan...")
	} else {
		results.GeneralInfo = append(results.GeneralInfo, "Starting non-recursive directory scan...")
	}

	var candidates []candidate
	members := make(map[string]struct{})
	filesChecked := false

	consider := func(path string, d fs.DirEntry) {
		filesChecked = true
		if !d.Type().IsRegular() {
			return
		}
		name := d.Name()
		if !nameRegex.MatchString(name) {
			return
		}
		if extFilter != nil {
			if _, ok := extFilter[strings.ToLower(filepath.Ext(name))]; !ok {
				return
			}
		}
		var number *int
		if needsNumber {
			if n, ok := pattern.ParseLastNumber(name); ok {
				number = &n
			}
		}
		if useNumFilter {
			if number == nil || *number < params.LowestNumber || *number > params.HighestNumber {
				return
			}
		}
		candidates = append(candidates, candidate{path: path, number: number})
		members[path] = struct{}{}
	}

	if params.RecursiveScan {
		walkErr := filepath.WalkDir(targetDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Permission-denied and friends: log and keep walking.
				results.Warnings = append(results.Warnings,
					fmt.Sprintf("Warning: Filesystem error during recursive scan near '%s': %v", path, err))
				return nil
			}
			if path == targetDir {
				return nil
			}
			consider(path, d)
			return nil
		})
		if walkErr != nil {
			results.Warnings = append(results.Warnings,
				fmt.Sprintf("Warning: Filesystem error during recursive scan: %v", walkErr))
		}
	} else {
		entries, err := os.ReadDir(targetDir)
		if err != nil {
			results.Errors = append(results.Errors,
				fmt.Sprintf("FATAL: Filesystem error starting directory scan at '%s': %v", targetDir, err))
			results.Success = false
			return nil, nil, filesChecked
		}
		for _, entry := range entries {
			filesChecked = true
			if entry.IsDir() {
				continue
			}
			consider(filepath.Join(targetDir, entry.Name()), entry)
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].path < candidates[j].path })
	logger.Debug("directory scan retained %d candidate(s) under %s", len(candidates), targetDir)
	return candidates, members, filesChecked
}

// generateName runs the three-stage name pipeline: placeholder expansion,
// find/replace, case conversion.
func generateName(params InputParams, ctx pattern.Context) string {
	name := pattern.ReplacePlaceholders(params.NamingPattern, params.Mode, ctx)
	name = pattern.PerformFindReplace(name, params.FindText, params.ReplaceText, params.FindCaseSensitive, params.FindUseRegex)
	return pattern.ApplyCaseConversion(name, params.CaseConversion)
}

// displayNumberWidth derives the zero-padding width for numeric placeholders.
// With an active range filter the width covers the largest magnitude the
// filter and increment can produce, clamped to [2, 9]; otherwise it defaults
// to 2.
func displayNumberWidth(params InputParams) int {
	if params.LowestNumber == 0 && params.HighestNumber == 0 {
		return 2
	}
	inc := int64(params.Increment)
	if inc < 0 {
		inc = -inc
	}
	maxAbs := abs64(int64(params.HighestNumber))
	for _, v := range []int64{
		abs64(int64(params.LowestNumber)),
		abs64(int64(params.HighestNumber) + inc),
		abs64(int64(params.LowestNumber) - inc),
	} {
		if v > maxAbs {
			maxAbs = v
		}
	}
	width := 1
	if maxAbs > 0 {
		width = int(math.Floor(math.Log10(float64(maxAbs)))) + 1
	}
	if width < 2 {
		width = 2
	}
	if width > 9 {
		width = 9
	}
	return width
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// parseExtensionFilter builds a lower-cased, dot-prefixed allow-set from a
// comma-separated extension list. Nil disables the filter.
func parseExtensionFilter(list string) map[string]struct{} {
	if list == "" {
		return nil
	}
	set := make(map[string]struct{})
	for _, tok := range strings.Split(list, ",") {
		ext := strings.ToLower(strings.TrimSpace(tok))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// splitFilename separates a filename into stem and extension at the last
// dot; dotfiles are all stem.
func splitFilename(name string) (stem, ext string) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

func emptyPlanSummary(params InputParams, results *OutputResults) string {
	issuesLogged := len(results.MissingSourceFiles) > 0 || len(results.PotentialOverwrites) > 0 ||
		len(results.Warnings) > 0 || len(results.Errors) > 0
	if params.Mode == pattern.ModeDirectoryScan && !issuesLogged && results.scanSawNoEntries {
		return "No files found in the target directory matching the specified pattern/filters."
	}
	if params.Mode == pattern.ModeManualSelection && len(params.ManualFiles) == 0 {
		return "No files were added to the list to be renamed."
	}
	return "No files eligible for renaming after applying all filters and checks."
}
