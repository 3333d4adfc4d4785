package memory

import (
	"context"
	"strings"

	"github.com/youthscout/talent-tracker/internal/domain/country"
)

type CountryRepository struct {
	store *Store
}

func (r *CountryRepository) FindByNameIgnoreCase(_ context.Context, name string) (country.Country, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.countries {
		if strings.EqualFold(row.Name, strings.TrimSpace(name)) {
			return row, true, nil
		}
	}
	return country.Country{}, false, nil
}

func (r *CountryRepository) Save(_ context.Context, record country.Country) (country.Country, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.store.allocID()
	}
	r.store.countries[record.ID] = record
	return record, nil
}
