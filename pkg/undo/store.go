package undo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

// ExecutedBatch is one applied rename batch persisted for later undo.
type ExecutedBatch struct {
	BatchID    string                 `json:"batch_id"`
	ExecutedAt time.Time              `json:"executed_at"`
	Operations []plan.RenameOperation `json:"operations"`
}

// BatchStore persists executed batches under a data directory so undo works
// across process invocations. Like Stack it is most-recent-first and capped
// at MaxLevels.
type BatchStore struct {
	dir string
}

// NewBatchStore creates a store rooted at dir.
func NewBatchStore(dir string) *BatchStore {
	return &BatchStore{dir: dir}
}

func (s *BatchStore) path() string {
	return filepath.Join(s.dir, "undo_batches.json")
}

// Push prepends a batch to the stored history, discarding entries beyond
// MaxLevels, and writes the file back.
func (s *BatchStore) Push(batch ExecutedBatch) error {
	if len(batch.Operations) == 0 {
		return nil
	}
	batches, err := s.load()
	if err != nil {
		return err
	}
	batches = append([]ExecutedBatch{batch}, batches...)
	if len(batches) > MaxLevels {
		batches = batches[:MaxLevels]
	}
	return s.save(batches)
}

// Pop removes and returns the most recent stored batch.
func (s *BatchStore) Pop() (ExecutedBatch, error) {
	batches, err := s.load()
	if err != nil {
		return ExecutedBatch{}, err
	}
	if len(batches) == 0 {
		return ExecutedBatch{}, fmt.Errorf("no batches available to undo")
	}
	latest := batches[0]
	if err := s.save(batches[1:]); err != nil {
		return ExecutedBatch{}, err
	}
	return latest, nil
}

// List returns the stored batches, most recent first.
func (s *BatchStore) List() ([]ExecutedBatch, error) {
	return s.load()
}

// Clear removes the whole stored history. A missing file is not an error.
func (s *BatchStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear undo history: %w", err)
	}
	return nil
}

func (s *BatchStore) load() ([]ExecutedBatch, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read undo history: %w", err)
	}
	var batches []ExecutedBatch
	if err := json.Unmarshal(data, &batches); err != nil {
		return nil, fmt.Errorf("failed to parse undo history: %w", err)
	}
	return batches, nil
}

func (s *BatchStore) save(batches []ExecutedBatch) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write undo history: %w", err)
	}
	return nil
}
