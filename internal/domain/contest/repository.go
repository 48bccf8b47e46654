package contest

import "context"

type Repository interface {
	List(ctx context.Context) ([]Contest, error)
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
}
