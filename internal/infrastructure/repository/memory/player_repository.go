package memory

import (
	"context"

	"github.com/youthscout/talent-tracker/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) FindByExternalID(_ context.Context, externalID int64) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.players {
		if row.ExternalID == externalID {
			return row, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) ExistsByExternalID(ctx context.Context, externalID int64) (bool, error) {
	_, found, err := r.FindByExternalID(ctx, externalID)
	return found, err
}

func (r *PlayerRepository) Save(_ context.Context, record player.Player) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.players[record.ID] = record
	return record, nil
}
