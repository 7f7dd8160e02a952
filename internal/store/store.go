// Package store holds the task list in process memory.
package store

import (
	"sync"

	"taskapi/internal/task"
)

// Store is an append-only ordered sequence of tasks. It lives as long as the
// process; nothing is written to disk.
type Store struct {
	mu    sync.RWMutex
	tasks []task.Task
}

func New() *Store { return &Store{tasks: make([]task.Task, 0)} }

// List returns every task in insertion order. The returned slice is a copy
// and is never nil.
func (s *Store) List() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Append adds t as the last element and returns it unchanged.
func (s *Store) Append(t task.Task) task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	return t
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
