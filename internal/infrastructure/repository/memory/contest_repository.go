package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
)

type ContestRepository struct {
	mu       sync.RWMutex
	contests map[string]contest.Contest
}

func NewContestRepository(seed []contest.Contest) *ContestRepository {
	contests := make(map[string]contest.Contest, len(seed))
	for _, c := range seed {
		contests[c.ID] = c
	}

	return &ContestRepository{contests: contests}
}

func (r *ContestRepository) List(_ context.Context) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0, len(r.contests))
	for _, c := range r.contests {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contests[contestID]
	return c, ok, nil
}
