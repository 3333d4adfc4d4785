package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/player"
	"github.com/youthscout/talent-tracker/internal/infrastructure/repository/memory"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
)

type recordingListener struct {
	mu      sync.Mutex
	calls   int
	success bool
	message string
}

func (l *recordingListener) OnPopulationComplete(success bool, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	l.success = success
	l.message = message
}

type populationFixture struct {
	service  *PopulationService
	store    *memory.Store
	budget   *CallBudget
	listener *recordingListener
}

func newPopulationFixture(provider StatsProvider, budget *CallBudget, cfg PopulationConfig) populationFixture {
	store := memory.NewStore()
	logger := logging.NewNop()
	reconciler := NewReconcileService(store.Countries(), store.Leagues(), store.Clubs(), store.Statistics(), store.Transfers(), provider, logger)
	resolver := NewClubResolver(reconciler, provider, logger)
	listener := &recordingListener{}

	service := NewPopulationService(
		provider,
		reconciler,
		resolver,
		store.Players(),
		store.Clubs(),
		store.Injuries(),
		store.Sidelined(),
		store.Trophies(),
		budget,
		listener,
		cfg,
		logger,
	)
	service.now = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }
	service.sleep = func(context.Context, time.Duration) {}

	return populationFixture{service: service, store: store, budget: budget, listener: listener}
}

func dateOfBirth(year int) *time.Time {
	value := time.Date(year, time.January, 10, 0, 0, 0, 0, time.UTC)
	return &value
}

func TestRun_PersistsNewPlayersAndSkipsExisting(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			return LeagueRecord{ExternalID: leagueExternalID, Name: "Premier League", Type: "League", Season: 2024, CountryName: "England"}, true, nil
		},
		fetchCountry: func(_ context.Context, name string) (CountryRecord, bool, error) {
			return CountryRecord{Name: name, Code: "GB"}, true, nil
		},
		fetchClubsByLeague: func(context.Context, int64, int) ([]ClubRecord, error) {
			return []ClubRecord{{ExternalID: 49, Name: "Chelsea", Country: "England"}}, nil
		},
		fetchPlayersPage: func(_ context.Context, _ int64, season, page int) ([]PlayerRecord, int, error) {
			if season != 2024 || page != 1 {
				return nil, 0, nil
			}
			return []PlayerRecord{
				{ExternalID: 100, Name: "Already Tracked", DateOfBirth: dateOfBirth(2005)},
				{
					ExternalID:  200,
					Name:        "Fresh Prospect",
					DateOfBirth: dateOfBirth(2006),
					Nationality: "England",
					Statistics: []StatisticRecord{{
						ClubExternalID:   49,
						ClubName:         "Chelsea",
						LeagueExternalID: 39,
						LeagueName:       "Premier League",
						Season:           2024,
						Appearances:      12,
						Goals:            5,
					}},
				},
				{ExternalID: 300, Name: "Veteran", DateOfBirth: dateOfBirth(1995)},
			}, 1, nil
		},
		fetchTransfers: func(context.Context, int64) ([]TransferRecord, error) {
			return []TransferRecord{{
				Date:             time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC),
				Type:             "Loan",
				ClubInExternalID: 49,
				ClubInName:       "Chelsea",
				ClubOutExternal:  51,
				ClubOutName:      "Brighton",
			}}, nil
		},
	}

	fixture := newPopulationFixture(provider, NewCallBudget(0), PopulationConfig{
		LeagueExternalIDs: []int64{39},
		CurrentSeason:     2024,
		PageDelay:         time.Millisecond,
	})
	ctx := context.Background()

	if _, err := fixture.store.Players().Save(ctx, player.Player{ExternalID: 100, Name: "Already Tracked"}); err != nil {
		t.Fatalf("seed existing player: %v", err)
	}

	summary := fixture.service.Run(ctx)

	if summary.Status != RunStatusDone {
		t.Fatalf("unexpected status: %s (%s)", summary.Status, summary.Message)
	}
	if summary.LeaguesProcessed != 1 {
		t.Fatalf("expected one league processed, got %d", summary.LeaguesProcessed)
	}
	if summary.PlayersProcessed != 1 {
		t.Fatalf("expected one new player, got %d", summary.PlayersProcessed)
	}
	if summary.PlayersSkipped != 1 {
		t.Fatalf("expected one skipped player, got %d", summary.PlayersSkipped)
	}
	if summary.StatisticsUpserted != 1 {
		t.Fatalf("expected one statistic, got %d", summary.StatisticsUpserted)
	}
	if summary.TransfersSaved != 1 {
		t.Fatalf("expected one transfer, got %d", summary.TransfersSaved)
	}

	saved, found, err := fixture.store.Players().FindByExternalID(ctx, 200)
	if err != nil || !found {
		t.Fatalf("expected persisted player, found=%v err=%v", found, err)
	}
	currentClub, foundClub, err := fixture.store.Clubs().FindByExternalID(ctx, 49)
	if err != nil || !foundClub {
		t.Fatalf("expected persisted club, found=%v err=%v", foundClub, err)
	}
	if saved.CurrentClubID != currentClub.ID {
		t.Fatalf("expected player attached to Chelsea, got club id %d", saved.CurrentClubID)
	}

	if fixture.listener.calls != 1 || !fixture.listener.success {
		t.Fatalf("expected one successful completion, got calls=%d success=%v", fixture.listener.calls, fixture.listener.success)
	}
}

func TestRun_FallsBackToPreviousSeasonWhenCurrentIsEmpty(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			return LeagueRecord{ExternalID: leagueExternalID, Name: "Eredivisie", Season: 2024}, true, nil
		},
		fetchPlayersPage: func(_ context.Context, _ int64, season, _ int) ([]PlayerRecord, int, error) {
			if season != 2023 {
				return nil, 0, nil
			}
			return []PlayerRecord{{
				ExternalID:  400,
				Name:        "Late Bloomer",
				DateOfBirth: dateOfBirth(2004),
				Statistics: []StatisticRecord{{
					ClubExternalID:   194,
					ClubName:         "Ajax",
					LeagueExternalID: 88,
					LeagueName:       "Eredivisie",
					Season:           2023,
				}},
			}}, 1, nil
		},
	}

	fixture := newPopulationFixture(provider, NewCallBudget(0), PopulationConfig{
		LeagueExternalIDs: []int64{88},
		CurrentSeason:     2024,
		PageDelay:         time.Millisecond,
	})

	summary := fixture.service.Run(context.Background())

	if summary.Status != RunStatusDone {
		t.Fatalf("unexpected status: %s (%s)", summary.Status, summary.Message)
	}
	if summary.PlayersProcessed != 1 {
		t.Fatalf("expected the previous season to be used, got %d players", summary.PlayersProcessed)
	}
}

func TestRun_SoftLimitStopsFurtherLeagues(t *testing.T) {
	t.Parallel()

	budget := NewCallBudget(1)
	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			budget.RecordCall()
			return LeagueRecord{ExternalID: leagueExternalID, Name: "Premier League", Season: 2024}, true, nil
		},
	}

	fixture := newPopulationFixture(provider, budget, PopulationConfig{
		LeagueExternalIDs: []int64{39, 140},
		CurrentSeason:     2024,
		PageDelay:         time.Millisecond,
	})

	summary := fixture.service.Run(context.Background())

	if summary.Status != RunStatusHalted {
		t.Fatalf("expected a halted run, got %s (%s)", summary.Status, summary.Message)
	}
	if summary.LeaguesProcessed != 1 {
		t.Fatalf("expected only the first league, got %d", summary.LeaguesProcessed)
	}
	if !fixture.listener.success {
		t.Fatal("a budget halt is partial progress, not a failure")
	}
}

func TestRun_ExhaustedBudgetStopsRemainingPlayersMidLeague(t *testing.T) {
	t.Parallel()

	budget := NewCallBudget(10)
	record := func() { budget.RecordCall() }
	var historyFetchedFor []int64

	prospect := func(externalID int64, name string) PlayerRecord {
		return PlayerRecord{
			ExternalID:  externalID,
			Name:        name,
			DateOfBirth: dateOfBirth(2005),
			Statistics: []StatisticRecord{{
				ClubExternalID:   49,
				ClubName:         "Chelsea",
				LeagueExternalID: 39,
				LeagueName:       "Premier League",
				Season:           2024,
			}},
		}
	}

	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			record()
			return LeagueRecord{ExternalID: leagueExternalID, Name: "Premier League", Season: 2024}, true, nil
		},
		fetchPlayersPage: func(context.Context, int64, int, int) ([]PlayerRecord, int, error) {
			record()
			return []PlayerRecord{prospect(500, "First Prospect"), prospect(600, "Second Prospect")}, 1, nil
		},
		fetchClubsByLeague: func(context.Context, int64, int) ([]ClubRecord, error) {
			record()
			return []ClubRecord{{ExternalID: 49, Name: "Chelsea"}}, nil
		},
		fetchClub: func(_ context.Context, clubExternalID int64) (ClubRecord, bool, error) {
			record()
			return ClubRecord{ExternalID: clubExternalID, Name: "Chelsea"}, true, nil
		},
		fetchPlayerSeasons: func(_ context.Context, playerExternalID int64) ([]int, error) {
			record()
			historyFetchedFor = append(historyFetchedFor, playerExternalID)
			return []int{2024, 2023}, nil
		},
		fetchPlayerBySeason: func(_ context.Context, playerExternalID int64, _ int) (PlayerRecord, bool, error) {
			record()
			return PlayerRecord{ExternalID: playerExternalID}, true, nil
		},
		fetchTransfers: func(context.Context, int64) ([]TransferRecord, error) {
			record()
			return nil, nil
		},
		fetchInjuries: func(context.Context, int64, int) ([]InjuryRecord, error) {
			record()
			return nil, nil
		},
		fetchSidelined: func(context.Context, int64) ([]SidelinedRecord, error) {
			record()
			return nil, nil
		},
		fetchTrophies: func(context.Context, int64) ([]TrophyRecord, error) {
			record()
			return nil, nil
		},
	}

	fixture := newPopulationFixture(provider, budget, PopulationConfig{
		LeagueExternalIDs: []int64{39},
		CurrentSeason:     2024,
		PageDelay:         time.Millisecond,
	})
	ctx := context.Background()

	summary := fixture.service.Run(ctx)

	// The first player's sub-fetches consume the last of the ceiling, so
	// the second player must be left untouched and the run still counts
	// as completed rather than failed.
	if summary.Status != RunStatusDone {
		t.Fatalf("unexpected status: %s (%s)", summary.Status, summary.Message)
	}
	if summary.PlayersProcessed != 1 {
		t.Fatalf("expected one processed player, got %d", summary.PlayersProcessed)
	}
	if summary.CallsUsed != 10 {
		t.Fatalf("expected the full ceiling to be consumed, got %d calls", summary.CallsUsed)
	}
	if len(historyFetchedFor) != 1 || historyFetchedFor[0] != 500 {
		t.Fatalf("expected sub-fetches for the first player only, got %v", historyFetchedFor)
	}
	if _, found, err := fixture.store.Players().FindByExternalID(ctx, 600); err != nil || found {
		t.Fatalf("second player must not be persisted, found=%v err=%v", found, err)
	}
	if fixture.listener.calls != 1 || !fixture.listener.success {
		t.Fatalf("expected one successful completion, got calls=%d success=%v", fixture.listener.calls, fixture.listener.success)
	}
}

func TestRun_DailyLimitFailsTheRun(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			return LeagueRecord{ExternalID: leagueExternalID, Name: "Premier League", Season: 2024}, true, nil
		},
		fetchPlayersPage: func(context.Context, int64, int, int) ([]PlayerRecord, int, error) {
			return nil, 0, fmt.Errorf("quota: %w", ErrDailyLimitExceeded)
		},
	}

	fixture := newPopulationFixture(provider, NewCallBudget(0), PopulationConfig{
		LeagueExternalIDs: []int64{39},
		CurrentSeason:     2024,
		PageDelay:         time.Millisecond,
	})

	summary := fixture.service.Run(context.Background())

	if summary.Status != RunStatusFailed {
		t.Fatalf("expected a failed run, got %s", summary.Status)
	}
	if fixture.listener.calls != 1 || fixture.listener.success {
		t.Fatalf("expected one failed completion, got calls=%d success=%v", fixture.listener.calls, fixture.listener.success)
	}
}

func TestRun_TransientProviderFailuresDoNotAbort(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			if leagueExternalID == 39 {
				return LeagueRecord{}, false, fmt.Errorf("provider boom")
			}
			return LeagueRecord{ExternalID: leagueExternalID, Name: "La Liga", Season: 2024}, true, nil
		},
	}

	fixture := newPopulationFixture(provider, NewCallBudget(0), PopulationConfig{
		LeagueExternalIDs: []int64{39, 140},
		CurrentSeason:     2024,
		PageDelay:         time.Millisecond,
	})

	summary := fixture.service.Run(context.Background())

	if summary.Status != RunStatusDone {
		t.Fatalf("expected the run to continue past a failed league, got %s (%s)", summary.Status, summary.Message)
	}
	if summary.LeaguesProcessed != 1 {
		t.Fatalf("expected the second league to be processed, got %d", summary.LeaguesProcessed)
	}
}
