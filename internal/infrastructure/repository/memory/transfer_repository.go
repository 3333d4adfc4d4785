package memory

import (
	"context"
	"sort"

	"github.com/youthscout/talent-tracker/internal/domain/transfer"
)

type TransferRepository struct {
	store *Store
}

func (r *TransferRepository) Exists(_ context.Context, identity transfer.Identity) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.transfers {
		if row.Identity() == identity {
			return true, nil
		}
	}
	return false, nil
}

func (r *TransferRepository) ListByPlayer(_ context.Context, playerID int64) ([]transfer.Transfer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]transfer.Transfer, 0, 4)
	for _, row := range r.store.transfers {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *TransferRepository) Save(_ context.Context, record transfer.Transfer) (transfer.Transfer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.transfers[record.ID] = record
	return record, nil
}
