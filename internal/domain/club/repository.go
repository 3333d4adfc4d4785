package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	FindByExternalID(ctx context.Context, externalID int64) (Club, bool, error)
	FindByNameIgnoreCase(ctx context.Context, name string) (Club, bool, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Club, error)
	Save(ctx context.Context, record Club) (Club, error)
}
