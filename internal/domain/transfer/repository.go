package transfer

import "context"

// Repository describes transfer persistence needs from use cases.
type Repository interface {
	Exists(ctx context.Context, identity Identity) (bool, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Transfer, error)
	Save(ctx context.Context, record Transfer) (Transfer, error)
}
