package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/youthscout/talent-tracker/internal/domain/club"
)

type ClubRepository struct {
	store *Store
}

func (r *ClubRepository) FindByExternalID(_ context.Context, externalID int64) (club.Club, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.clubs {
		if row.ExternalID != nil && *row.ExternalID == externalID {
			return row, true, nil
		}
	}
	return club.Club{}, false, nil
}

func (r *ClubRepository) FindByNameIgnoreCase(_ context.Context, name string) (club.Club, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.clubs {
		if strings.EqualFold(row.Name, strings.TrimSpace(name)) {
			return row, true, nil
		}
	}
	return club.Club{}, false, nil
}

// ListByLeague derives a roster from the statistic rows linking clubs
// to the league.
func (r *ClubRepository) ListByLeague(_ context.Context, leagueID int64) ([]club.Club, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[int64]struct{}, 16)
	out := make([]club.Club, 0, 16)
	for _, stat := range r.store.statistics {
		if stat.LeagueID != leagueID {
			continue
		}
		if _, ok := seen[stat.ClubID]; ok {
			continue
		}
		row, exists := r.store.clubs[stat.ClubID]
		if !exists {
			continue
		}
		seen[stat.ClubID] = struct{}{}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ClubRepository) Save(_ context.Context, record club.Club) (club.Club, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.clubs[record.ID] = record
	return record, nil
}
