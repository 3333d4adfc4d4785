package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/domain/country"
	"github.com/youthscout/talent-tracker/internal/domain/league"
	basecache "github.com/youthscout/talent-tracker/internal/platform/cache"
)

// Read-through decorators for the lookups the reconciler hammers
// during a population run. Saves invalidate so a freshly persisted
// row is visible to the next lookup.

type cachedCountry struct {
	value  country.Country
	exists bool
}

type CountryRepository struct {
	next  country.Repository
	cache *basecache.Store
}

func NewCountryRepository(next country.Repository, cache *basecache.Store) *CountryRepository {
	return &CountryRepository{next: next, cache: cache}
}

func (r *CountryRepository) FindByNameIgnoreCase(ctx context.Context, name string) (country.Country, bool, error) {
	key := "country:name:" + strings.ToLower(strings.TrimSpace(name))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByNameIgnoreCase(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedCountry{value: item, exists: exists}, nil
	})
	if err != nil {
		return country.Country{}, false, err
	}

	cached, _ := v.(cachedCountry)
	return cached.value, cached.exists, nil
}

func (r *CountryRepository) Save(ctx context.Context, record country.Country) (country.Country, error) {
	saved, err := r.next.Save(ctx, record)
	if err != nil {
		return country.Country{}, err
	}

	r.cache.Delete(ctx, "country:name:"+strings.ToLower(strings.TrimSpace(saved.Name)))
	return saved, nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.next.List(ctx)
}

func (r *LeagueRepository) FindByExternalID(ctx context.Context, externalID int64) (league.League, bool, error) {
	key := "league:ext:" + strconv.FormatInt(externalID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByExternalID(ctx, externalID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) FindByNameIgnoreCase(ctx context.Context, name string) (league.League, bool, error) {
	key := "league:name:" + strings.ToLower(strings.TrimSpace(name))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByNameIgnoreCase(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Save(ctx context.Context, record league.League) (league.League, error) {
	saved, err := r.next.Save(ctx, record)
	if err != nil {
		return league.League{}, err
	}

	if saved.ExternalID > 0 {
		r.cache.Delete(ctx, "league:ext:"+strconv.FormatInt(saved.ExternalID, 10))
	}
	r.cache.Delete(ctx, "league:name:"+strings.ToLower(strings.TrimSpace(saved.Name)))
	return saved, nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) FindByExternalID(ctx context.Context, externalID int64) (club.Club, bool, error) {
	key := "club:ext:" + strconv.FormatInt(externalID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByExternalID(ctx, externalID)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) FindByNameIgnoreCase(ctx context.Context, name string) (club.Club, bool, error) {
	key := "club:name:" + strings.ToLower(strings.TrimSpace(name))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByNameIgnoreCase(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) ListByLeague(ctx context.Context, leagueID int64) ([]club.Club, error) {
	return r.next.ListByLeague(ctx, leagueID)
}

func (r *ClubRepository) Save(ctx context.Context, record club.Club) (club.Club, error) {
	saved, err := r.next.Save(ctx, record)
	if err != nil {
		return club.Club{}, err
	}

	if saved.ExternalID != nil && *saved.ExternalID > 0 {
		r.cache.Delete(ctx, "club:ext:"+strconv.FormatInt(*saved.ExternalID, 10))
	}
	r.cache.Delete(ctx, "club:name:"+strings.ToLower(strings.TrimSpace(saved.Name)))
	return saved, nil
}
