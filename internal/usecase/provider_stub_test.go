package usecase

import "context"

// fakeProvider implements StatsProvider with overridable hooks. A nil
// hook behaves like a provider miss: empty result, no error.
type fakeProvider struct {
	fetchLeague         func(ctx context.Context, leagueExternalID int64) (LeagueRecord, bool, error)
	fetchClubsByLeague  func(ctx context.Context, leagueExternalID int64, season int) ([]ClubRecord, error)
	fetchClub           func(ctx context.Context, clubExternalID int64) (ClubRecord, bool, error)
	fetchPlayersPage    func(ctx context.Context, leagueExternalID int64, season, page int) ([]PlayerRecord, int, error)
	fetchPlayerSeasons  func(ctx context.Context, playerExternalID int64) ([]int, error)
	fetchPlayerBySeason func(ctx context.Context, playerExternalID int64, season int) (PlayerRecord, bool, error)
	fetchTransfers      func(ctx context.Context, playerExternalID int64) ([]TransferRecord, error)
	fetchInjuries       func(ctx context.Context, playerExternalID int64, season int) ([]InjuryRecord, error)
	fetchSidelined      func(ctx context.Context, playerExternalID int64) ([]SidelinedRecord, error)
	fetchTrophies       func(ctx context.Context, playerExternalID int64) ([]TrophyRecord, error)
	fetchCountry        func(ctx context.Context, name string) (CountryRecord, bool, error)
}

func (p *fakeProvider) FetchLeague(ctx context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
	if p.fetchLeague == nil {
		return LeagueRecord{}, false, nil
	}
	return p.fetchLeague(ctx, leagueExternalID)
}

func (p *fakeProvider) FetchClubsByLeague(ctx context.Context, leagueExternalID int64, season int) ([]ClubRecord, error) {
	if p.fetchClubsByLeague == nil {
		return nil, nil
	}
	return p.fetchClubsByLeague(ctx, leagueExternalID, season)
}

func (p *fakeProvider) FetchClub(ctx context.Context, clubExternalID int64) (ClubRecord, bool, error) {
	if p.fetchClub == nil {
		return ClubRecord{}, false, nil
	}
	return p.fetchClub(ctx, clubExternalID)
}

func (p *fakeProvider) FetchPlayersPage(ctx context.Context, leagueExternalID int64, season, page int) ([]PlayerRecord, int, error) {
	if p.fetchPlayersPage == nil {
		return nil, 0, nil
	}
	return p.fetchPlayersPage(ctx, leagueExternalID, season, page)
}

func (p *fakeProvider) FetchPlayerSeasons(ctx context.Context, playerExternalID int64) ([]int, error) {
	if p.fetchPlayerSeasons == nil {
		return nil, nil
	}
	return p.fetchPlayerSeasons(ctx, playerExternalID)
}

func (p *fakeProvider) FetchPlayerBySeason(ctx context.Context, playerExternalID int64, season int) (PlayerRecord, bool, error) {
	if p.fetchPlayerBySeason == nil {
		return PlayerRecord{}, false, nil
	}
	return p.fetchPlayerBySeason(ctx, playerExternalID, season)
}

func (p *fakeProvider) FetchTransfers(ctx context.Context, playerExternalID int64) ([]TransferRecord, error) {
	if p.fetchTransfers == nil {
		return nil, nil
	}
	return p.fetchTransfers(ctx, playerExternalID)
}

func (p *fakeProvider) FetchInjuries(ctx context.Context, playerExternalID int64, season int) ([]InjuryRecord, error) {
	if p.fetchInjuries == nil {
		return nil, nil
	}
	return p.fetchInjuries(ctx, playerExternalID, season)
}

func (p *fakeProvider) FetchSidelined(ctx context.Context, playerExternalID int64) ([]SidelinedRecord, error) {
	if p.fetchSidelined == nil {
		return nil, nil
	}
	return p.fetchSidelined(ctx, playerExternalID)
}

func (p *fakeProvider) FetchTrophies(ctx context.Context, playerExternalID int64) ([]TrophyRecord, error) {
	if p.fetchTrophies == nil {
		return nil, nil
	}
	return p.fetchTrophies(ctx, playerExternalID)
}

func (p *fakeProvider) FetchCountry(ctx context.Context, name string) (CountryRecord, bool, error) {
	if p.fetchCountry == nil {
		return CountryRecord{}, false, nil
	}
	return p.fetchCountry(ctx, name)
}
