package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
	"github.com/youthscout/talent-tracker/internal/domain/transfer"
	"github.com/youthscout/talent-tracker/internal/infrastructure/repository/memory"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
)

func newReconcileFixture(provider StatsProvider) (*ReconcileService, *memory.Store) {
	store := memory.NewStore()
	service := NewReconcileService(
		store.Countries(),
		store.Leagues(),
		store.Clubs(),
		store.Statistics(),
		store.Transfers(),
		provider,
		logging.NewNop(),
	)
	return service, store
}

func TestResolveCountry_CreatesOnceThenReusesRow(t *testing.T) {
	t.Parallel()

	var providerCalls atomic.Int64
	provider := &fakeProvider{
		fetchCountry: func(_ context.Context, name string) (CountryRecord, bool, error) {
			providerCalls.Add(1)
			return CountryRecord{Name: name, Code: "GB", FlagURL: "https://example.test/gb.svg"}, true, nil
		},
	}
	service, _ := newReconcileFixture(provider)
	ctx := context.Background()

	first, found, err := service.ResolveCountry(ctx, "England")
	if err != nil {
		t.Fatalf("resolve country failed: %v", err)
	}
	if !found || first.ID <= 0 {
		t.Fatalf("expected persisted country, got %+v", first)
	}
	if first.Code != "GB" {
		t.Fatalf("expected provider enrichment, got %+v", first)
	}

	second, found, err := service.ResolveCountry(ctx, "england")
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if !found || second.ID != first.ID {
		t.Fatalf("expected the existing row, got %+v", second)
	}
	if providerCalls.Load() != 1 {
		t.Fatalf("expected one provider call, got %d", providerCalls.Load())
	}
}

func TestResolveCountry_EmptyNameIsANoop(t *testing.T) {
	t.Parallel()

	service, _ := newReconcileFixture(&fakeProvider{})

	_, found, err := service.ResolveCountry(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("blank name must not resolve to a country")
	}
}

func TestResolveLeague_FetchesDetailsAndLinksCountry(t *testing.T) {
	t.Parallel()

	var leagueCalls atomic.Int64
	provider := &fakeProvider{
		fetchLeague: func(_ context.Context, leagueExternalID int64) (LeagueRecord, bool, error) {
			leagueCalls.Add(1)
			return LeagueRecord{
				ExternalID:  leagueExternalID,
				Name:        "Premier League",
				Type:        "League",
				Season:      2024,
				CountryName: "England",
			}, true, nil
		},
		fetchCountry: func(_ context.Context, name string) (CountryRecord, bool, error) {
			return CountryRecord{Name: name, Code: "GB"}, true, nil
		},
	}
	service, _ := newReconcileFixture(provider)
	ctx := context.Background()

	row, err := service.ResolveLeague(ctx, LeagueRecord{ExternalID: 39}, 2023)
	if err != nil {
		t.Fatalf("resolve league failed: %v", err)
	}
	if row.Name != "Premier League" || row.Season != 2024 {
		t.Fatalf("unexpected league row: %+v", row)
	}
	if row.CountryID == nil {
		t.Fatal("expected the league to reference its country")
	}

	again, err := service.ResolveLeague(ctx, LeagueRecord{ExternalID: 39}, 2023)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.ID != row.ID {
		t.Fatalf("expected the persisted row, got %+v", again)
	}
	if leagueCalls.Load() != 1 {
		t.Fatalf("expected one provider call, got %d", leagueCalls.Load())
	}
}

func TestResolveLeague_NoIdentityRejected(t *testing.T) {
	t.Parallel()

	service, _ := newReconcileFixture(&fakeProvider{})

	_, err := service.ResolveLeague(context.Background(), LeagueRecord{}, 2024)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResolveClub_NameLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	service, _ := newReconcileFixture(&fakeProvider{})
	ctx := context.Background()

	created, err := service.ResolveClub(ctx, ClubRecord{Name: "Chelsea"}, nil)
	if err != nil {
		t.Fatalf("resolve club failed: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected persisted club, got %+v", created)
	}

	found, err := service.ResolveClub(ctx, ClubRecord{Name: "CHELSEA"}, nil)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected the existing row, got %+v", found)
	}
}

func TestResolveClub_NamedCandidatePersistedAsGivenOnProviderMiss(t *testing.T) {
	t.Parallel()

	service, store := newReconcileFixture(&fakeProvider{})
	ctx := context.Background()

	byName, err := service.ResolveClub(ctx, ClubRecord{Name: "Chelsea"}, nil)
	if err != nil {
		t.Fatalf("seed resolve failed: %v", err)
	}

	// The provider has no detail for the external id, so the candidate
	// is persisted as given rather than matched against the existing
	// same-named row.
	resolved, err := service.ResolveClub(ctx, ClubRecord{ExternalID: 49, Name: "Chelsea"}, nil)
	if err != nil {
		t.Fatalf("resolve club failed: %v", err)
	}
	if resolved.ID == byName.ID {
		t.Fatal("external-id candidate must not be folded into the name-only row")
	}
	if resolved.ExternalID == nil || *resolved.ExternalID != 49 {
		t.Fatalf("expected the external id to be persisted, got %+v", resolved)
	}

	again, _, err := store.Clubs().FindByExternalID(ctx, 49)
	if err != nil {
		t.Fatalf("find persisted club: %v", err)
	}
	if again.ID != resolved.ID {
		t.Fatalf("expected the persisted row back, got %+v", again)
	}
}

func TestResolveClub_ProviderFailureFallsBackToSentinel(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchClub: func(context.Context, int64) (ClubRecord, bool, error) {
			return ClubRecord{}, false, fmt.Errorf("provider boom")
		},
	}
	service, _ := newReconcileFixture(provider)

	resolved, err := service.ResolveClub(context.Background(), ClubRecord{ExternalID: 49}, nil)
	if err != nil {
		t.Fatalf("resolution must absorb provider failures, got %v", err)
	}
	if resolved.Name != club.ErrorFallbackName {
		t.Fatalf("expected error fallback sentinel, got %+v", resolved)
	}
	if !resolved.IsSentinel() {
		t.Fatal("fallback club must classify as sentinel")
	}
}

func TestResolveClub_DailyLimitSurfaces(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchClub: func(context.Context, int64) (ClubRecord, bool, error) {
			return ClubRecord{}, false, fmt.Errorf("quota: %w", ErrDailyLimitExceeded)
		},
	}
	service, _ := newReconcileFixture(provider)

	_, err := service.ResolveClub(context.Background(), ClubRecord{ExternalID: 49}, nil)
	if !errors.Is(err, ErrDailyLimitExceeded) {
		t.Fatalf("expected ErrDailyLimitExceeded to surface, got %v", err)
	}
}

func TestResolveClub_EmptyCandidateUsesFallbackThenSentinel(t *testing.T) {
	t.Parallel()

	service, store := newReconcileFixture(&fakeProvider{})
	ctx := context.Background()

	fallback, err := store.Clubs().Save(ctx, club.Club{Name: "Fallback FC"})
	if err != nil {
		t.Fatalf("seed fallback club: %v", err)
	}

	viaFallback, err := service.ResolveClub(ctx, ClubRecord{}, &fallback)
	if err != nil {
		t.Fatalf("resolve with fallback failed: %v", err)
	}
	if viaFallback.ID != fallback.ID {
		t.Fatalf("expected fallback club, got %+v", viaFallback)
	}

	viaSentinel, err := service.ResolveClub(ctx, ClubRecord{}, nil)
	if err != nil {
		t.Fatalf("resolve without fallback failed: %v", err)
	}
	if viaSentinel.Name != club.FreeAgentName {
		t.Fatalf("expected free agent sentinel, got %+v", viaSentinel)
	}
}

func TestUpsertStatistic_OverwritesExistingRowInPlace(t *testing.T) {
	t.Parallel()

	service, _ := newReconcileFixture(&fakeProvider{})
	ctx := context.Background()

	first, err := service.UpsertStatistic(ctx, playerstat.Statistic{
		PlayerID: 1, ClubID: 2, LeagueID: 3, Season: 2024,
		Appearances: 10, Goals: 4,
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := service.UpsertStatistic(ctx, playerstat.Statistic{
		PlayerID: 1, ClubID: 2, LeagueID: 3, Season: 2024,
		Appearances: 15, Goals: 7,
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected the same row, got ids %d and %d", first.ID, second.ID)
	}
	if second.Goals != 7 || second.Appearances != 15 {
		t.Fatalf("expected overwritten scalars, got %+v", second)
	}
}

func TestUpsertStatistic_RejectsIncompleteKey(t *testing.T) {
	t.Parallel()

	service, _ := newReconcileFixture(&fakeProvider{})

	_, err := service.UpsertStatistic(context.Background(), playerstat.Statistic{PlayerID: 1, Season: 2024})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSaveTransfer_DeduplicatesByIdentity(t *testing.T) {
	t.Parallel()

	service, _ := newReconcileFixture(&fakeProvider{})
	ctx := context.Background()

	row := transfer.Transfer{
		PlayerID:   1,
		Date:       time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		Type:       "Loan",
		ClubFromID: 2,
		ClubToID:   3,
	}

	saved, err := service.SaveTransfer(ctx, row)
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if !saved {
		t.Fatal("expected first transfer to be saved")
	}

	saved, err = service.SaveTransfer(ctx, row)
	if err != nil {
		t.Fatalf("duplicate save failed: %v", err)
	}
	if saved {
		t.Fatal("identical transfer must be deduplicated")
	}
}
