package trophy

import "context"

// Repository describes trophy persistence needs from use cases.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID int64) ([]Trophy, error)
	Save(ctx context.Context, record Trophy) (Trophy, error)
}
