// Package dispatch serializes the long-running operations. A request runs to
// completion on the goroutine that submits it, one at a time, and its
// buffered channel receives exactly one terminal result. A front end that
// wants the work off its interactive goroutine submits from a worker and
// reads the channel wherever it likes.
package dispatch

import (
	"fmt"
	"sync"

	"github.com/Denizmerty/RenameUtility/pkg/backup"
	"github.com/Denizmerty/RenameUtility/pkg/execute"
	"github.com/Denizmerty/RenameUtility/pkg/logger"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
	"github.com/Denizmerty/RenameUtility/pkg/undo"
)

// PlanRequest asks for a rename plan to be calculated.
type PlanRequest struct {
	Params plan.InputParams
	Result chan plan.OutputResults
}

// RenameRequest asks for a batch of operations to be executed, optionally
// preceded by a backup of the target directory. When the backup fails the
// rename does not run.
type RenameRequest struct {
	Operations    []plan.RenameOperation
	Increment     int
	BackupEnabled bool
	BackupSource  string
	BackupContext string
	Result        chan RenameOutcome
}

// RenameOutcome combines the backup and rename phases of one request.
// Rename is zero-valued when the backup phase blocked execution.
type RenameOutcome struct {
	BackupAttempted bool
	Backup          backup.Result
	Rename          execute.Result
}

// UndoRequest asks for a previously executed batch to be reverted.
type UndoRequest struct {
	Operations []plan.RenameOperation
	Result     chan undo.Result
}

// Dispatcher runs plan, rename and undo requests one at a time.
type Dispatcher struct {
	mu      sync.Mutex
	backups *backup.Manager
}

// New returns a Dispatcher using the given backup manager.
func New(backups *backup.Manager) *Dispatcher {
	return &Dispatcher{backups: backups}
}

// NewPlanRequest builds a request with its result channel ready.
func NewPlanRequest(params plan.InputParams) PlanRequest {
	return PlanRequest{Params: params, Result: make(chan plan.OutputResults, 1)}
}

// NewRenameRequest builds a request with its result channel ready.
func NewRenameRequest(operations []plan.RenameOperation, increment int, backupEnabled bool, backupSource, backupContext string) RenameRequest {
	return RenameRequest{
		Operations:    operations,
		Increment:     increment,
		BackupEnabled: backupEnabled,
		BackupSource:  backupSource,
		BackupContext: backupContext,
		Result:        make(chan RenameOutcome, 1),
	}
}

// NewUndoRequest builds a request with its result channel ready.
func NewUndoRequest(operations []plan.RenameOperation) UndoRequest {
	return UndoRequest{Operations: operations, Result: make(chan undo.Result, 1)}
}

// Plan calculates a rename plan and delivers it on the request channel.
func (d *Dispatcher) Plan(req PlanRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("plan request panicked: %v", r)
			var results plan.OutputResults
			results.Errors = append(results.Errors, fmt.Sprintf("Internal error during plan calculation: %v", r))
			req.Result <- results
		}
	}()
	req.Result <- plan.Calculate(req.Params)
}

// Rename runs the backup phase (when enabled) and then the rename batch,
// delivering the combined outcome on the request channel. A failed backup
// prevents any rename from being attempted.
func (d *Dispatcher) Rename(req RenameRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("rename request panicked: %v", r)
			req.Result <- RenameOutcome{
				Rename: execute.Result{
					Failed: []execute.Failure{{Name: "batch", Message: fmt.Sprintf("Internal error during rename: %v", r)}},
				},
			}
		}
	}()

	var outcome RenameOutcome
	if req.BackupEnabled {
		outcome.BackupAttempted = true
		outcome.Backup = d.backups.Create(req.BackupSource, req.BackupContext)
		if !outcome.Backup.Success {
			logger.Error("backup failed, rename aborted: %s", outcome.Backup.ErrorMessage)
			req.Result <- outcome
			return
		}
	}
	outcome.Rename = execute.Run(req.Operations, req.Increment)
	req.Result <- outcome
}

// Undo reverts a batch and delivers the result on the request channel.
func (d *Dispatcher) Undo(req UndoRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("undo request panicked: %v", r)
			req.Result <- undo.Result{
				Failed: []undo.Failure{{Name: "batch", Message: fmt.Sprintf("Internal error during undo: %v", r)}},
			}
		}
	}()
	req.Result <- undo.Run(req.Operations)
}
