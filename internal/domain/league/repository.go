package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	FindByExternalID(ctx context.Context, externalID int64) (League, bool, error)
	FindByNameIgnoreCase(ctx context.Context, name string) (League, bool, error)
	Save(ctx context.Context, record League) (League, error)
}
