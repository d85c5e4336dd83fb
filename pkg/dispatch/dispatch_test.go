package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Denizmerty/RenameUtility/pkg/backup"
	"github.com/Denizmerty/RenameUtility/pkg/pattern"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

func TestPlanRequestDeliversOneResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img_01.jpg"), []byte("x"), 0644))

	d := New(nil)
	req := NewPlanRequest(plan.InputParams{
		Mode:            pattern.ModeDirectoryScan,
		TargetDirectory: dir,
		FilenamePattern: "img_*",
		NamingPattern:   "pic_<num><ext>",
		Increment:       1,
	})
	d.Plan(req)

	results := <-req.Result
	require.True(t, results.Success)
	require.Len(t, results.RenamePlan, 1)
	assert.Equal(t, "pic_02.jpg", results.RenamePlan[0].NewName)

	select {
	case extra := <-req.Result:
		t.Fatalf("unexpected second result: %+v", extra)
	default:
	}
}

func TestRenameRequestWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	d := New(backup.NewManager(filepath.Join(t.TempDir(), "backups")))
	req := NewRenameRequest([]plan.RenameOperation{{
		OldName:     "a.txt",
		NewName:     "b.txt",
		OldFullPath: filepath.Join(dir, "a.txt"),
		NewFullPath: filepath.Join(dir, "b.txt"),
	}}, 0, false, "", "")
	d.Rename(req)

	outcome := <-req.Result
	assert.False(t, outcome.BackupAttempted)
	require.True(t, outcome.Rename.OverallSuccess)
	assert.FileExists(t, filepath.Join(dir, "b.txt"))
}

func TestRenameRequestRunsBackupFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("payload"), 0644))

	d := New(backup.NewManager(filepath.Join(t.TempDir(), "backups")))
	req := NewRenameRequest([]plan.RenameOperation{{
		OldName:     "a.txt",
		NewName:     "b.txt",
		OldFullPath: filepath.Join(dir, "a.txt"),
		NewFullPath: filepath.Join(dir, "b.txt"),
	}}, 0, true, dir, "ctx")
	d.Rename(req)

	outcome := <-req.Result
	require.True(t, outcome.BackupAttempted)
	require.True(t, outcome.Backup.Success, outcome.Backup.ErrorMessage)
	require.True(t, outcome.Rename.OverallSuccess)

	// The backup holds the pre-rename name.
	data, err := os.ReadFile(filepath.Join(outcome.Backup.BackupPath, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestRenameRequestBackupFailureBlocksExecution(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	d := New(backup.NewManager(filepath.Join(t.TempDir(), "backups")))
	req := NewRenameRequest([]plan.RenameOperation{{
		OldName:     "a.txt",
		NewName:     "b.txt",
		OldFullPath: filepath.Join(dir, "a.txt"),
		NewFullPath: filepath.Join(dir, "b.txt"),
	}}, 0, true, filepath.Join(dir, "does-not-exist"), "ctx")
	d.Rename(req)

	outcome := <-req.Result
	assert.True(t, outcome.BackupAttempted)
	assert.False(t, outcome.Backup.Success)
	// The rename never ran: no successes, no failures, file untouched.
	assert.Empty(t, outcome.Rename.Successful)
	assert.Empty(t, outcome.Rename.Failed)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "b.txt"))
}

func TestUndoRequest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "renamed.txt"), []byte("r"), 0644))

	d := New(nil)
	req := NewUndoRequest([]plan.RenameOperation{{
		OldName:     "original.txt",
		NewName:     "renamed.txt",
		OldFullPath: filepath.Join(dir, "original.txt"),
		NewFullPath: filepath.Join(dir, "renamed.txt"),
	}})
	d.Undo(req)

	result := <-req.Result
	require.True(t, result.OverallSuccess)
	assert.FileExists(t, filepath.Join(dir, "original.txt"))
}
