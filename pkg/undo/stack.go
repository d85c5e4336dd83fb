package undo

import "github.com/Denizmerty/RenameUtility/pkg/plan"

// MaxLevels bounds the number of batches the undo history retains.
const MaxLevels = 10

// Stack is an in-memory, most-recent-first history of executed batches, for
// embedding callers that keep their undo state in-process. The command-line
// front end persists its history with BatchStore instead. Pushing beyond
// MaxLevels discards the oldest batch. Callers own the stack and are
// expected to Clear it on any action that invalidates the recorded
// filesystem state. Not safe for concurrent use.
type Stack struct {
	batches [][]plan.RenameOperation
}

// Push records a batch of successfully applied operations as the most recent
// undo candidate. Empty batches are ignored.
func (s *Stack) Push(ops []plan.RenameOperation) {
	if len(ops) == 0 {
		return
	}
	batch := make([]plan.RenameOperation, len(ops))
	copy(batch, ops)
	s.batches = append([][]plan.RenameOperation{batch}, s.batches...)
	if len(s.batches) > MaxLevels {
		s.batches = s.batches[:MaxLevels]
	}
}

// Pop removes and returns the most recent batch.
func (s *Stack) Pop() ([]plan.RenameOperation, bool) {
	if len(s.batches) == 0 {
		return nil, false
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, true
}

// Peek returns the most recent batch without removing it.
func (s *Stack) Peek() ([]plan.RenameOperation, bool) {
	if len(s.batches) == 0 {
		return nil, false
	}
	return s.batches[0], true
}

// Len reports how many batches are available to undo.
func (s *Stack) Len() int {
	return len(s.batches)
}

// Clear drops the whole history.
func (s *Stack) Clear() {
	s.batches = nil
}
