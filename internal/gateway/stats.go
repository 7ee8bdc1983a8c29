package gateway

import (
	"context"
	"sort"
	"sync"
)

// StatsRecorder guarda decisiones de rate limit por ruta.
type StatsRecorder interface {
	Record(ctx context.Context, route string, allowed bool) error
}

type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

// MemoryStats es la implementación en memoria (dev/tests). No expira.
type MemoryStats struct {
	mu      sync.Mutex
	byRoute map[string]Counters
}

func NewMemoryStats() *MemoryStats {
	return &MemoryStats{byRoute: make(map[string]Counters)}
}

func (s *MemoryStats) Record(_ context.Context, route string, allowed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byRoute[route]
	if allowed {
		c.Allowed++
	} else {
		c.Denied++
	}
	s.byRoute[route] = c
	return nil
}

func (s *MemoryStats) Get(route string) Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byRoute[route]
}

func (s *MemoryStats) Routes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.byRoute))
	for r := range s.byRoute {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
