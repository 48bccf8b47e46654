package team

import "context"

type Repository interface {
	// Create persists the team and its membership rows atomically. It
	// returns ErrDuplicateTeam when the owner already holds a team for
	// the same contest.
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByUserAndContest(ctx context.Context, userID, contestID string) (Team, bool, error)
	// ListByContest lists teams for a contest; an empty contestID lists
	// the contest-less teams ranked on global points.
	ListByContest(ctx context.Context, contestID string) ([]Team, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Team, error)
	SetCachedTotal(ctx context.Context, teamID string, totalPoints int) error
	Delete(ctx context.Context, teamID string) (bool, error)
}
