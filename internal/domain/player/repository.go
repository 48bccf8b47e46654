package player

import "context"

// Filter narrows pool listings. Zero value means the full pool.
type Filter struct {
	Category Category
}

// ScorePatch is an admin score update. Points always overwrites the stored
// value; Runs and Wickets are applied only when non-nil.
type ScorePatch struct {
	Points  int
	Runs    *int
	Wickets *int
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	UpdateScore(ctx context.Context, playerID string, patch ScorePatch) (Player, bool, error)
	Delete(ctx context.Context, playerID string) (bool, error)
}
