package injury

import "context"

// Repository describes injury persistence needs from use cases.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID int64) ([]Injury, error)
	Save(ctx context.Context, record Injury) (Injury, error)
}
