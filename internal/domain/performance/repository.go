package performance

import "context"

type Repository interface {
	Get(ctx context.Context, playerID, contestID string) (Performance, bool, error)
	ListByContest(ctx context.Context, contestID string) ([]Performance, error)
	Upsert(ctx context.Context, row Performance) error
}
