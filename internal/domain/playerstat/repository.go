package playerstat

import "context"

// Repository describes statistic persistence needs from use cases.
type Repository interface {
	FindByKey(ctx context.Context, key Key) (Statistic, bool, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Statistic, error)
	Save(ctx context.Context, record Statistic) (Statistic, error)
}
