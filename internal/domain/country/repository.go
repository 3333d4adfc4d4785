package country

import "context"

// Repository describes country persistence needs from use cases.
type Repository interface {
	FindByNameIgnoreCase(ctx context.Context, name string) (Country, bool, error)
	Save(ctx context.Context, record Country) (Country, error)
}
