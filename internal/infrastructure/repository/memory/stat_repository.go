package memory

import (
	"context"
	"sort"

	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
)

type StatRepository struct {
	store *Store
}

func (r *StatRepository) FindByKey(_ context.Context, key playerstat.Key) (playerstat.Statistic, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.statistics {
		if row.Key() == key {
			return row, true, nil
		}
	}
	return playerstat.Statistic{}, false, nil
}

func (r *StatRepository) ListByPlayer(_ context.Context, playerID int64) ([]playerstat.Statistic, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]playerstat.Statistic, 0, 8)
	for _, row := range r.store.statistics {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *StatRepository) Save(_ context.Context, record playerstat.Statistic) (playerstat.Statistic, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.statistics[record.ID] = record
	return record, nil
}
