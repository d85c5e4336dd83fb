// Package history appends a human-readable log of executed rename batches.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

// Writer appends batch records to a plain-text history log. Failures are
// reported to the caller but rename results never depend on them.
type Writer struct {
	Path string
}

// NewWriter returns a Writer logging to rename_history.log under dir.
func NewWriter(dir string) *Writer {
	return &Writer{Path: filepath.Join(dir, "rename_history.log")}
}

// Append records a batch of operations under the given batch ID and
// operation type (for example RENAME or UNDO).
func (w *Writer) Append(batchID, operationType string, operations []plan.RenameOperation) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s %s at %s ===\n", operationType, batchID, time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Files: %d\n", len(operations))
	for _, op := range operations {
		fmt.Fprintf(&b, "  %s -> %s\n", op.OldFullPath, op.NewFullPath)
	}
	b.WriteString("\n")

	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	return nil
}

// Read returns the raw contents of the history log, or an empty string when
// no history has been written yet.
func (w *Writer) Read() (string, error) {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read history log: %w", err)
	}
	return string(data), nil
}
