package main

import (
	"sort"
	"sync"

	"github.com/rhyrak/go-timetable/internal/pipeline"
)

// runStore keeps generated runs in memory for the lifetime of the server.
type runStore struct {
	mu   sync.RWMutex
	runs map[string]*pipeline.Run
}

func newRunStore() *runStore {
	return &runStore{runs: make(map[string]*pipeline.Run)}
}

func (s *runStore) Save(run *pipeline.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *runStore) Get(id string) (*pipeline.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// IDs lists runs oldest first.
func (s *runStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]*pipeline.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
