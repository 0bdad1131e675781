package voxel

import "sync"

// Shared guards a grid for hosts that edit the world from another goroutine.
// Physics steps read under View; edits and regeneration run under Update and
// never interleave with a step.
type Shared struct {
	mu   sync.RWMutex
	grid *Dense
}

func NewShared(g *Dense) *Shared {
	return &Shared{grid: g}
}

// View runs fn with shared read access. fn must not modify the grid.
func (s *Shared) View(fn func(g *Dense)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.grid)
}

// Update runs fn with exclusive access.
func (s *Shared) Update(fn func(g *Dense)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grid)
}

// Swap replaces the grid, returning the previous one.
func (s *Shared) Swap(g *Dense) *Dense {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.grid
	s.grid = g
	return old
}
