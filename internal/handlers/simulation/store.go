package simulation

import (
	"sync"

	"github.com/google/uuid"

	"panelsim/internal/models"
)

const maxStoredRuns = 32

// Store keeps recent simulation results in memory so chart and export
// endpoints can reference them by run ID
type Store struct {
	mu    sync.RWMutex
	runs  map[string]*models.SimulationResult
	order []string
}

// NewStore creates an empty result store
func NewStore() *Store {
	return &Store{runs: make(map[string]*models.SimulationResult)}
}

// Put stores a result under a fresh run ID and returns the ID, evicting the
// oldest run beyond the retention cap
func (s *Store) Put(result *models.SimulationResult) string {
	id := uuid.New().String()
	result.RunID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[id] = result
	s.order = append(s.order, id)
	for len(s.order) > maxStoredRuns {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
	return id
}

// Get returns the result for a run ID, or nil if unknown or evicted
func (s *Store) Get(id string) *models.SimulationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id]
}
