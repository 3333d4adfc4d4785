package usecase

import (
	"context"
	"time"
)

// CountryRecord is a country row as returned by the provider.
type CountryRecord struct {
	Name    string
	Code    string
	FlagURL string
}

// LeagueRecord is a league row scoped to one season.
type LeagueRecord struct {
	ExternalID  int64
	Name        string
	Type        string
	Season      int
	CountryName string
	LogoURL     string
}

// ClubRecord is a club or national team row.
type ClubRecord struct {
	ExternalID  int64
	Name        string
	Country     string
	National    bool
	Founded     int
	Stadium     string
	StadiumCity string
	LogoURL     string
}

// StatisticRecord is one statistical line attached to a player record.
// Club and league are carried by external id and name so the
// reconciler can resolve them without extra provider calls.
type StatisticRecord struct {
	ClubExternalID   int64
	ClubName         string
	ClubNational     bool
	LeagueExternalID int64
	LeagueName       string
	Season           int
	Position         string
	Appearances      int
	Lineups          int
	Minutes          int
	Goals            int
	Assists          int
	YellowCards      int
	RedCards         int
	Rating           *float64
	Captain          bool
}

// PlayerRecord is a player profile plus the statistic lines the
// provider returned alongside it.
type PlayerRecord struct {
	ExternalID  int64
	Name        string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Nationality string
	HeightCM    *int
	WeightKG    *int
	PhotoURL    string
	Statistics  []StatisticRecord
}

// TransferRecord is one transfer row for a player.
type TransferRecord struct {
	Date             time.Time
	Type             string
	ClubInExternalID int64
	ClubInName       string
	ClubOutExternal  int64
	ClubOutName      string
}

// InjuryRecord is one reported injury for a player.
type InjuryRecord struct {
	Season int
	Type   string
	Reason string
	Date   *time.Time
}

// SidelinedRecord is one unavailability spell for a player.
type SidelinedRecord struct {
	Type  string
	Start *time.Time
	End   *time.Time
}

// TrophyRecord is one honour entry for a player.
type TrophyRecord struct {
	League  string
	Country string
	Season  string
	Place   string
}

// StatsProvider is the provider-side contract the population pipeline
// depends on. Implementations absorb transient failures and return
// empty results with a nil error; only ErrDailyLimitExceeded and
// context cancellation surface as errors.
type StatsProvider interface {
	FetchLeague(ctx context.Context, leagueExternalID int64) (LeagueRecord, bool, error)
	FetchClubsByLeague(ctx context.Context, leagueExternalID int64, season int) ([]ClubRecord, error)
	FetchClub(ctx context.Context, clubExternalID int64) (ClubRecord, bool, error)
	FetchPlayersPage(ctx context.Context, leagueExternalID int64, season, page int) ([]PlayerRecord, int, error)
	FetchPlayerSeasons(ctx context.Context, playerExternalID int64) ([]int, error)
	FetchPlayerBySeason(ctx context.Context, playerExternalID int64, season int) (PlayerRecord, bool, error)
	FetchTransfers(ctx context.Context, playerExternalID int64) ([]TransferRecord, error)
	FetchInjuries(ctx context.Context, playerExternalID int64, season int) ([]InjuryRecord, error)
	FetchSidelined(ctx context.Context, playerExternalID int64) ([]SidelinedRecord, error)
	FetchTrophies(ctx context.Context, playerExternalID int64) ([]TrophyRecord, error)
	FetchCountry(ctx context.Context, name string) (CountryRecord, bool, error)
}
