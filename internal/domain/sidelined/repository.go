package sidelined

import "context"

// Repository describes sidelined spell persistence needs from use cases.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID int64) ([]Spell, error)
	Save(ctx context.Context, record Spell) (Spell, error)
}
