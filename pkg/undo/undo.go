package undo

import (
	"fmt"
	"os"
	"strings"

	"github.com/Denizmerty/RenameUtility/pkg/logger"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

// Reversion records one rename that was rolled back, new name first.
type Reversion struct {
	NewName string `json:"new_name"`
	OldName string `json:"old_name"`
}

// Failure records one operation that could not be reverted, keyed by the
// post-rename filename.
type Failure struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Result reports the outcome of undoing a batch. OverallSuccess is true only
// for a non-empty input with zero failures.
type Result struct {
	Successful     []Reversion `json:"successful"`
	Failed         []Failure   `json:"failed"`
	OverallSuccess bool        `json:"overall_success"`
}

// Run reverts a previously executed batch by re-applying each rename in
// reverse, processing the list in reverse of execution order (undo is LIFO
// within the batch). Each reversion gets the same existence checks, occupied-
// destination guard and post-rename verification as forward execution. This
// does not consult backups: if files were modified, moved or renamed again
// since the batch completed, individual reversions fail and are reported.
func Run(opsToUndo []plan.RenameOperation) Result {
	var result Result
	if len(opsToUndo) == 0 {
		result.OverallSuccess = true
		return result
	}

	for i := len(opsToUndo) - 1; i >= 0; i-- {
		undoOne(opsToUndo[i], &result)
	}

	result.OverallSuccess = len(result.Failed) == 0
	return result
}

// undoOne reverts a single operation. The roles invert: the file currently
// lives at NewFullPath and must return to OldFullPath.
func undoOne(op plan.RenameOperation, result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result.Failed = append(result.Failed, Failure{
				Name:    op.NewName,
				Message: fmt.Sprintf("Unexpected panic during undo: %v", r),
			})
		}
	}()

	currentPath := op.NewFullPath
	originalPath := op.OldFullPath

	info, err := os.Stat(currentPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Failed = append(result.Failed, Failure{
				Name:    op.NewName,
				Message: fmt.Sprintf("Skipped Undo: Current file not found (%s). Cannot revert.", currentPath),
			})
		} else {
			result.Failed = append(result.Failed, Failure{
				Name:    op.NewName,
				Message: fmt.Sprintf("Skipped Undo: Filesystem error checking current file existence: %v", err),
			})
		}
		return
	}
	if !info.Mode().IsRegular() {
		result.Failed = append(result.Failed, Failure{
			Name:    op.NewName,
			Message: fmt.Sprintf("Skipped Undo: Current path is not a regular file (%s).", currentPath),
		})
		return
	}

	if originalPath == currentPath {
		logger.Warn("skipping identity operation for '%s' during undo", op.NewName)
		return
	}

	if _, err := os.Stat(originalPath); err == nil {
		result.Failed = append(result.Failed, Failure{
			Name:    op.NewName,
			Message: fmt.Sprintf("Skipped Undo: Original path is already occupied (%s).", originalPath),
		})
		return
	} else if !os.IsNotExist(err) {
		result.Failed = append(result.Failed, Failure{
			Name:    op.NewName,
			Message: fmt.Sprintf("Skipped Undo: Filesystem error checking original path (%s): %v", originalPath, err),
		})
		return
	}

	if err := os.Rename(currentPath, originalPath); err != nil {
		result.Failed = append(result.Failed, Failure{
			Name:    op.NewName,
			Message: fmt.Sprintf("Undo rename failed: %v", err),
		})
		return
	}

	if msg, ok := verifyUndo(currentPath, originalPath); !ok {
		result.Failed = append(result.Failed, Failure{Name: op.NewName, Message: msg})
		return
	}
	result.Successful = append(result.Successful, Reversion{NewName: op.NewName, OldName: op.OldName})
}

func verifyUndo(currentPath, originalPath string) (string, bool) {
	var problems []string
	if _, err := os.Stat(currentPath); err == nil {
		problems = append(problems, "Current file still exists.")
	} else if !os.IsNotExist(err) {
		problems = append(problems, fmt.Sprintf("Error checking current (%v).", err))
	}
	if _, err := os.Stat(originalPath); err != nil {
		if os.IsNotExist(err) {
			problems = append(problems, "Original file does not exist.")
		} else {
			problems = append(problems, fmt.Sprintf("Error checking original (%v).", err))
		}
	}
	if len(problems) > 0 {
		return "Verification failed after undo rename reported success. " + strings.Join(problems, " "), false
	}
	return "", true
}
