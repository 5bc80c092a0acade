package samples

import "sync"

// Store accumulates raw numeric observations per series between collector
// runs. Producers record cheap samples on the hot path; the scheduled
// usage-summary collector drains and aggregates them out-of-band.
type Store struct {
	mu     sync.Mutex
	series map[string][]float64
}

// NewStore returns an empty sample store.
func NewStore() *Store {
	return &Store{series: make(map[string][]float64)}
}

// Record appends an observation to the named series.
func (s *Store) Record(series string, v float64) {
	s.mu.Lock()
	s.series[series] = append(s.series[series], v)
	s.mu.Unlock()
}

// Drain returns all accumulated series and resets the store. The returned
// slices are owned by the caller.
func (s *Store) Drain() map[string][]float64 {
	s.mu.Lock()
	out := s.series
	s.series = make(map[string][]float64)
	s.mu.Unlock()
	return out
}

// Len reports the number of series currently holding samples.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.series)
}
