package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	FindByExternalID(ctx context.Context, externalID int64) (Player, bool, error)
	ExistsByExternalID(ctx context.Context, externalID int64) (bool, error)
	Save(ctx context.Context, record Player) (Player, error)
}
