package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

func TestAppendAndRead(t *testing.T) {
	w := NewWriter(t.TempDir())

	ops := []plan.RenameOperation{
		{OldFullPath: "/d/a.txt", NewFullPath: "/d/b.txt"},
		{OldFullPath: "/d/c.txt", NewFullPath: "/d/d.txt"},
	}
	require.NoError(t, w.Append("batch-1", "RENAME", ops))
	require.NoError(t, w.Append("batch-1", "UNDO", ops[:1]))

	contents, err := w.Read()
	require.NoError(t, err)

	assert.Contains(t, contents, "=== RENAME batch-1 at ")
	assert.Contains(t, contents, "=== UNDO batch-1 at ")
	assert.Contains(t, contents, "Files: 2")
	assert.Contains(t, contents, "Files: 1")
	assert.Contains(t, contents, "  /d/a.txt -> /d/b.txt")
	assert.Equal(t, 2, strings.Count(contents, "=== "))
}

func TestReadEmptyHistory(t *testing.T) {
	w := NewWriter(t.TempDir())
	contents, err := w.Read()
	require.NoError(t, err)
	assert.Empty(t, contents)
}
