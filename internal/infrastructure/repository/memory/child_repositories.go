package memory

import (
	"context"
	"sort"

	"github.com/youthscout/talent-tracker/internal/domain/injury"
	"github.com/youthscout/talent-tracker/internal/domain/sidelined"
	"github.com/youthscout/talent-tracker/internal/domain/trophy"
)

// Player child records are append-only; idempotency is handled
// upstream by skipping already-persisted players.

type InjuryRepository struct {
	store *Store
}

func (r *InjuryRepository) ListByPlayer(_ context.Context, playerID int64) ([]injury.Injury, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]injury.Injury, 0, 4)
	for _, row := range r.store.injuries {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InjuryRepository) Save(_ context.Context, record injury.Injury) (injury.Injury, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.injuries[record.ID] = record
	return record, nil
}

type SidelinedRepository struct {
	store *Store
}

func (r *SidelinedRepository) ListByPlayer(_ context.Context, playerID int64) ([]sidelined.Spell, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]sidelined.Spell, 0, 4)
	for _, row := range r.store.spells {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SidelinedRepository) Save(_ context.Context, record sidelined.Spell) (sidelined.Spell, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.spells[record.ID] = record
	return record, nil
}

type TrophyRepository struct {
	store *Store
}

func (r *TrophyRepository) ListByPlayer(_ context.Context, playerID int64) ([]trophy.Trophy, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]trophy.Trophy, 0, 4)
	for _, row := range r.store.trophies {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TrophyRepository) Save(_ context.Context, record trophy.Trophy) (trophy.Trophy, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.trophies[record.ID] = record
	return record, nil
}
