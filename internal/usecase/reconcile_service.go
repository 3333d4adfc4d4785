package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/domain/country"
	"github.com/youthscout/talent-tracker/internal/domain/league"
	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
	"github.com/youthscout/talent-tracker/internal/domain/transfer"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
)

// ReconcileService maps freshly parsed provider records onto persisted
// rows. Resolution is ordered: external id lookup, provider refetch,
// case-insensitive name match, supplied fallback, sentinel. Once a row
// is returned it is the source of truth; records are never re-applied.
type ReconcileService struct {
	countryRepo  country.Repository
	leagueRepo   league.Repository
	clubRepo     club.Repository
	statRepo     playerstat.Repository
	transferRepo transfer.Repository
	provider     StatsProvider
	logger       *logging.Logger
}

func NewReconcileService(
	countryRepo country.Repository,
	leagueRepo league.Repository,
	clubRepo club.Repository,
	statRepo playerstat.Repository,
	transferRepo transfer.Repository,
	provider StatsProvider,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		countryRepo:  countryRepo,
		leagueRepo:   leagueRepo,
		clubRepo:     clubRepo,
		statRepo:     statRepo,
		transferRepo: transferRepo,
		provider:     provider,
		logger:       logger,
	}
}

// ResolveCountry finds or creates a country by name. A provider miss
// still yields a persisted name-only row so league rows can reference
// it.
func (s *ReconcileService) ResolveCountry(ctx context.Context, name string) (country.Country, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return country.Country{}, false, nil
	}

	existing, found, err := s.countryRepo.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		return country.Country{}, false, fmt.Errorf("find country by name: %w", err)
	}
	if found {
		return existing, true, nil
	}

	candidate := country.Country{Name: name}
	record, fetched, err := s.provider.FetchCountry(ctx, name)
	if err != nil {
		return country.Country{}, false, err
	}
	if fetched {
		candidate.Name = firstNonEmptyString(record.Name, name)
		candidate.Code = record.Code
		candidate.FlagURL = record.FlagURL
	}

	saved, err := s.countryRepo.Save(ctx, candidate)
	if err != nil {
		return country.Country{}, false, fmt.Errorf("save country: %w", err)
	}
	return saved, true, nil
}

// ResolveLeague finds or creates a league row for the record. A record
// without a season gets defaultSeason.
func (s *ReconcileService) ResolveLeague(ctx context.Context, record LeagueRecord, defaultSeason int) (league.League, error) {
	if record.Season <= 0 {
		record.Season = defaultSeason
	}

	if record.ExternalID > 0 {
		existing, found, err := s.leagueRepo.FindByExternalID(ctx, record.ExternalID)
		if err != nil {
			return league.League{}, fmt.Errorf("find league by external id: %w", err)
		}
		if found {
			return existing, nil
		}

		fetched, ok, err := s.provider.FetchLeague(ctx, record.ExternalID)
		if err != nil {
			return league.League{}, err
		}
		if ok {
			record.Name = firstNonEmptyString(fetched.Name, record.Name)
			record.Type = firstNonEmptyString(fetched.Type, record.Type)
			record.CountryName = firstNonEmptyString(fetched.CountryName, record.CountryName)
			record.LogoURL = firstNonEmptyString(fetched.LogoURL, record.LogoURL)
			if fetched.Season > 0 {
				record.Season = fetched.Season
			}
		}
		return s.saveLeague(ctx, record)
	}

	if strings.TrimSpace(record.Name) != "" {
		existing, found, err := s.leagueRepo.FindByNameIgnoreCase(ctx, record.Name)
		if err != nil {
			return league.League{}, fmt.Errorf("find league by name: %w", err)
		}
		if found {
			return existing, nil
		}
		return s.saveLeague(ctx, record)
	}

	return league.League{}, fmt.Errorf("%w: league record has no external id or name", ErrInvalidInput)
}

func (s *ReconcileService) saveLeague(ctx context.Context, record LeagueRecord) (league.League, error) {
	row := league.League{
		ExternalID: record.ExternalID,
		Name:       strings.TrimSpace(record.Name),
		Type:       record.Type,
		Season:     record.Season,
		LogoURL:    record.LogoURL,
	}

	resolved, found, err := s.ResolveCountry(ctx, record.CountryName)
	if err != nil {
		if stderrors.Is(err, ErrDailyLimitExceeded) {
			return league.League{}, err
		}
		s.logger.WarnContext(ctx, "resolve league country failed, saving league without it",
			"league_external_id", record.ExternalID, "country", record.CountryName, "error", err)
	} else if found {
		row.CountryID = &resolved.ID
	}

	saved, err := s.leagueRepo.Save(ctx, row)
	if err != nil {
		return league.League{}, fmt.Errorf("save league: %w", err)
	}
	return saved, nil
}

// ResolveClub resolves a club record to a persisted row. It never
// returns an unresolved reference: when every strategy fails the
// result is a sentinel club, so only ErrDailyLimitExceeded or a
// failure to persist the sentinel itself can surface as an error.
func (s *ReconcileService) ResolveClub(ctx context.Context, candidate ClubRecord, fallback *club.Club) (club.Club, error) {
	resolved, err := s.resolveClub(ctx, candidate, fallback)
	if err == nil {
		return resolved, nil
	}
	if stderrors.Is(err, ErrDailyLimitExceeded) {
		return club.Club{}, err
	}

	s.logger.ErrorContext(ctx, "club resolution failed, using error fallback sentinel",
		"club_external_id", candidate.ExternalID, "club_name", candidate.Name, "error", err)
	return s.SentinelClub(ctx, club.ErrorFallbackName)
}

func (s *ReconcileService) resolveClub(ctx context.Context, candidate ClubRecord, fallback *club.Club) (club.Club, error) {
	if candidate.ExternalID > 0 {
		existing, found, err := s.clubRepo.FindByExternalID(ctx, candidate.ExternalID)
		if err != nil {
			return club.Club{}, fmt.Errorf("find club by external id: %w", err)
		}
		if found {
			return existing, nil
		}

		fetched, ok, err := s.provider.FetchClub(ctx, candidate.ExternalID)
		if err != nil {
			return club.Club{}, err
		}
		if ok {
			candidate = mergeClubRecords(candidate, fetched)
		}
		if strings.TrimSpace(candidate.Name) != "" {
			return s.saveClub(ctx, candidate)
		}
	}

	if strings.TrimSpace(candidate.Name) != "" {
		existing, found, err := s.clubRepo.FindByNameIgnoreCase(ctx, candidate.Name)
		if err != nil {
			return club.Club{}, fmt.Errorf("find club by name: %w", err)
		}
		if found {
			return existing, nil
		}
		return s.saveClub(ctx, candidate)
	}

	if fallback != nil && fallback.ID > 0 {
		return *fallback, nil
	}

	return s.SentinelClub(ctx, club.FreeAgentName)
}

func (s *ReconcileService) saveClub(ctx context.Context, candidate ClubRecord) (club.Club, error) {
	row := club.Club{
		Name:        strings.TrimSpace(candidate.Name),
		Country:     candidate.Country,
		National:    candidate.National,
		Founded:     candidate.Founded,
		Stadium:     candidate.Stadium,
		StadiumCity: candidate.StadiumCity,
		LogoURL:     candidate.LogoURL,
	}
	if candidate.ExternalID > 0 {
		externalID := candidate.ExternalID
		row.ExternalID = &externalID
	}

	saved, err := s.clubRepo.Save(ctx, row)
	if err != nil {
		return club.Club{}, fmt.Errorf("save club: %w", err)
	}
	return saved, nil
}

// SentinelClub finds or creates a placeholder club by name.
func (s *ReconcileService) SentinelClub(ctx context.Context, name string) (club.Club, error) {
	existing, found, err := s.clubRepo.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		return club.Club{}, fmt.Errorf("find sentinel club: %w", err)
	}
	if found {
		return existing, nil
	}

	saved, err := s.clubRepo.Save(ctx, club.Club{Name: name})
	if err != nil {
		return club.Club{}, fmt.Errorf("save sentinel club: %w", err)
	}
	return saved, nil
}

// UpsertStatistic enforces one row per (player, club, league, season).
// An existing row has its scalar fields overwritten in place.
func (s *ReconcileService) UpsertStatistic(ctx context.Context, record playerstat.Statistic) (playerstat.Statistic, error) {
	if err := record.Validate(); err != nil {
		return playerstat.Statistic{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, found, err := s.statRepo.FindByKey(ctx, record.Key())
	if err != nil {
		return playerstat.Statistic{}, fmt.Errorf("find statistic by key: %w", err)
	}
	if found {
		record.ID = existing.ID
	}

	saved, err := s.statRepo.Save(ctx, record)
	if err != nil {
		return playerstat.Statistic{}, fmt.Errorf("save statistic: %w", err)
	}
	return saved, nil
}

// SaveTransfer persists a transfer unless an identical
// (player, date, from, to) row already exists.
func (s *ReconcileService) SaveTransfer(ctx context.Context, record transfer.Transfer) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.transferRepo.Exists(ctx, record.Identity())
	if err != nil {
		return false, fmt.Errorf("check transfer exists: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := s.transferRepo.Save(ctx, record); err != nil {
		return false, fmt.Errorf("save transfer: %w", err)
	}
	return true, nil
}

func mergeClubRecords(candidate, fetched ClubRecord) ClubRecord {
	candidate.Name = firstNonEmptyString(fetched.Name, candidate.Name)
	candidate.Country = firstNonEmptyString(fetched.Country, candidate.Country)
	candidate.National = candidate.National || fetched.National
	if fetched.Founded > 0 {
		candidate.Founded = fetched.Founded
	}
	candidate.Stadium = firstNonEmptyString(fetched.Stadium, candidate.Stadium)
	candidate.StadiumCity = firstNonEmptyString(fetched.StadiumCity, candidate.StadiumCity)
	candidate.LogoURL = firstNonEmptyString(fetched.LogoURL, candidate.LogoURL)
	return candidate
}

func firstNonEmptyString(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
