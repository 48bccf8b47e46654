package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crickhq/fantasy-cricket/internal/domain/team"
)

type teamOwnerKey struct {
	userID    string
	contestID string
}

// TeamRepository keeps teams in memory. The owners index mirrors the
// unique (user_id, contest_id) constraint of the postgres schema so the
// duplicate-team race behaves the same in both backends.
type TeamRepository struct {
	mu     sync.RWMutex
	teams  map[string]team.Team
	owners map[teamOwnerKey]string
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:  make(map[string]team.Team),
		owners: make(map[teamOwnerKey]string),
	}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ownerKey := teamOwnerKey{userID: t.UserID, contestID: t.ContestID}
	if _, exists := r.owners[ownerKey]; exists {
		return fmt.Errorf("%w: user=%s contest=%s", team.ErrDuplicateTeam, t.UserID, t.ContestID)
	}
	if _, exists := r.teams[t.ID]; exists {
		return fmt.Errorf("team id %s already exists", t.ID)
	}

	r.teams[t.ID] = cloneTeam(t)
	r.owners[ownerKey] = t.ID

	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(t), true, nil
}

func (r *TeamRepository) GetByUserAndContest(_ context.Context, userID, contestID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamID, ok := r.owners[teamOwnerKey{userID: userID, contestID: contestID}]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(r.teams[teamID]), true, nil
}

func (r *TeamRepository) ListByContest(_ context.Context, contestID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.teams {
		if t.ContestID == contestID {
			out = append(out, cloneTeam(t))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListByPlayer(_ context.Context, playerID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.teams {
		if t.HasPlayer(playerID) {
			out = append(out, cloneTeam(t))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) SetCachedTotal(_ context.Context, teamID string, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	t.TotalPoints = totalPoints
	r.teams[teamID] = t

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[teamID]
	if !ok {
		return false, nil
	}
	delete(r.teams, teamID)
	delete(r.owners, teamOwnerKey{userID: t.UserID, contestID: t.ContestID})

	return true, nil
}

func cloneTeam(t team.Team) team.Team {
	out := t
	out.Members = append([]team.Member(nil), t.Members...)
	return out
}
