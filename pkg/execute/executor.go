package execute

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Denizmerty/RenameUtility/pkg/logger"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

// Failure records one operation that could not be applied, keyed by the
// original filename.
type Failure struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Result reports the outcome of executing a rename plan. Successful holds
// the operations actually applied, in execution order, so they can later be
// fed to the undo engine. OverallSuccess is true only for a non-empty plan
// with zero failures.
type Result struct {
	Successful     []plan.RenameOperation `json:"successful"`
	Failed         []Failure              `json:"failed"`
	OverallSuccess bool                   `json:"overall_success"`
}

// Run applies the plan to the filesystem. Operations are first ordered so no
// rename clobbers a not-yet-processed source: numbered files move in
// descending original-number order when the increment is positive (the higher
// number vacates its slot first) and ascending otherwise, with manual-mode
// index and then source path as deterministic tie-breakers. Every operation
// is re-validated against the filesystem immediately before and verified
// immediately after its rename; any problem becomes a per-item failure and
// processing continues.
func Run(operations []plan.RenameOperation, increment int) Result {
	var result Result
	if len(operations) == 0 {
		result.OverallSuccess = true
		return result
	}

	ordered := make([]plan.RenameOperation, len(operations))
	copy(ordered, operations)
	sortForExecution(ordered, increment)

	for _, op := range ordered {
		runOne(op, &result)
	}

	result.OverallSuccess = len(result.Failed) == 0
	return result
}

// runOne applies a single operation, converting any panic out of the
// filesystem layer into a failure entry.
func runOne(op plan.RenameOperation, result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result.Failed = append(result.Failed, Failure{
				Name:    op.OldName,
				Message: fmt.Sprintf("Unexpected panic during rename: %v", r),
			})
		}
	}()

	info, err := os.Stat(op.OldFullPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Failed = append(result.Failed, Failure{
				Name:    op.OldName,
				Message: fmt.Sprintf("Skipped: Source file disappeared (%s).", op.OldFullPath),
			})
		} else {
			result.Failed = append(result.Failed, Failure{
				Name:    op.OldName,
				Message: fmt.Sprintf("Skipped: Filesystem error checking source existence: %v", err),
			})
		}
		return
	}
	if !info.Mode().IsRegular() {
		result.Failed = append(result.Failed, Failure{
			Name:    op.OldName,
			Message: fmt.Sprintf("Skipped: Source is not a regular file (%s).", op.OldFullPath),
		})
		return
	}

	if op.OldFullPath == op.NewFullPath {
		// Planning elides identity renames; seeing one here means the
		// plan was constructed by hand. Nothing to do.
		logger.Warn("skipping identity rename for '%s' during execution", op.OldName)
		return
	}

	if _, err := os.Stat(op.NewFullPath); err == nil {
		// Mostly catches external changes since planning; the sort order
		// prevents this for in-batch targets.
		result.Failed = append(result.Failed, Failure{
			Name:    op.OldName,
			Message: fmt.Sprintf("Skipped: Target path already exists (%s).", op.NewFullPath),
		})
		return
	} else if !os.IsNotExist(err) {
		result.Failed = append(result.Failed, Failure{
			Name:    op.OldName,
			Message: fmt.Sprintf("Skipped: Filesystem error checking target path (%s): %v", op.NewFullPath, err),
		})
		return
	}

	if err := os.Rename(op.OldFullPath, op.NewFullPath); err != nil {
		result.Failed = append(result.Failed, Failure{
			Name:    op.OldName,
			Message: fmt.Sprintf("Rename failed: %v", err),
		})
		return
	}

	if msg, ok := verifyRename(op.OldFullPath, op.NewFullPath); !ok {
		result.Failed = append(result.Failed, Failure{Name: op.OldName, Message: msg})
		return
	}
	result.Successful = append(result.Successful, op)
}

// verifyRename confirms the rename actually took effect: the source must be
// gone and the target present.
func verifyRename(oldPath, newPath string) (string, bool) {
	var problems []string
	if _, err := os.Stat(oldPath); err == nil {
		problems = append(problems, "Old file still exists.")
	} else if !os.IsNotExist(err) {
		problems = append(problems, fmt.Sprintf("Error checking old (%v).", err))
	}
	if _, err := os.Stat(newPath); err != nil {
		if os.IsNotExist(err) {
			problems = append(problems, "New file does not exist.")
		} else {
			problems = append(problems, fmt.Sprintf("Error checking new (%v).", err))
		}
	}
	if len(problems) > 0 {
		return "Verification failed after rename reported success. " + strings.Join(problems, " "), false
	}
	return "", true
}

// sortForExecution orders operations so renames within a numbered sequence
// never collide mid-batch. Number-less operations and ties fall back to
// manual index, then source path, giving a deterministic total order.
func sortForExecution(ops []plan.RenameOperation, increment int) {
	sort.SliceStable(ops, func(i, j int) bool {
		a, b := ops[i], ops[j]
		if a.Number != nil && b.Number != nil && *a.Number != *b.Number {
			if increment > 0 {
				return *a.Number > *b.Number
			}
			return *a.Number < *b.Number
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.OldFullPath < b.OldFullPath
	})
}
