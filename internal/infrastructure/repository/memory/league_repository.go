package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/youthscout/talent-tracker/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]league.League, 0, len(r.store.leagues))
	for _, row := range r.store.leagues {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) FindByExternalID(_ context.Context, externalID int64) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.leagues {
		if row.ExternalID == externalID {
			return row, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) FindByNameIgnoreCase(_ context.Context, name string) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.leagues {
		if strings.EqualFold(row.Name, strings.TrimSpace(name)) {
			return row, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) Save(_ context.Context, record league.League) (league.League, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.leagues[record.ID] = record
	return record, nil
}
