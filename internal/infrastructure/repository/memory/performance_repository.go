package memory

import (
	"context"
	"sync"

	"github.com/crickhq/fantasy-cricket/internal/domain/performance"
)

type performanceKey struct {
	playerID  string
	contestID string
}

type PerformanceRepository struct {
	mu   sync.RWMutex
	rows map[performanceKey]performance.Performance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{rows: make(map[performanceKey]performance.Performance)}
}

func (r *PerformanceRepository) Get(_ context.Context, playerID, contestID string) (performance.Performance, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[performanceKey{playerID: playerID, contestID: contestID}]
	return row, ok, nil
}

func (r *PerformanceRepository) ListByContest(_ context.Context, contestID string) ([]performance.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Performance, 0)
	for key, row := range r.rows {
		if key.contestID == contestID {
			out = append(out, row)
		}
	}

	return out, nil
}

func (r *PerformanceRepository) Upsert(_ context.Context, row performance.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[performanceKey{playerID: row.PlayerID, contestID: row.ContestID}] = row
	return nil
}
