package usecase

import (
	"context"
	"testing"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/infrastructure/repository/memory"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
)

func newResolverFixture(provider StatsProvider) (*ClubResolver, *memory.Store) {
	reconciler, store := newReconcileFixture(provider)
	return NewClubResolver(reconciler, provider, logging.NewNop()), store
}

func TestIsInternationalCompetition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want bool
	}{
		{"UEFA Youth League", true},
		{"FIFA World Cup", true},
		{"Friendlies", true},
		{"CONMEBOL Libertadores", true},
		{"Copa America", true},
		{"UEFA Nations League", true},
		{"Premier League", false},
		{"Serie A", false},
		{"Eredivisie", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsInternationalCompetition(tc.name); got != tc.want {
			t.Errorf("IsInternationalCompetition(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDetermineCurrentClub_InternationalUsesLatestDomesticStat(t *testing.T) {
	t.Parallel()

	resolver, _ := newResolverFixture(&fakeProvider{})
	ctx := context.Background()

	record := PlayerRecord{
		ExternalID: 200,
		Name:       "Prospect",
		Statistics: []StatisticRecord{
			{ClubExternalID: 10, ClubName: "England National Team", ClubNational: true, LeagueName: "UEFA Euro Championship", Season: 2024},
			{ClubExternalID: 49, ClubName: "Chelsea", LeagueName: "Premier League", Season: 2023},
			{ClubExternalID: 51, ClubName: "Brighton", LeagueName: "Premier League", Season: 2021},
		},
	}

	resolved, err := resolver.DetermineCurrentClub(ctx, record, LeagueRecord{Name: "UEFA Youth League"}, nil, 2024)
	if err != nil {
		t.Fatalf("determine current club failed: %v", err)
	}
	if resolved.Name != "Chelsea" {
		t.Fatalf("expected latest domestic club, got %+v", resolved)
	}
}

func TestDetermineCurrentClub_InternationalWalksOlderSeasons(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fetchPlayerSeasons: func(context.Context, int64) ([]int, error) {
			return []int{2022, 2024}, nil
		},
		fetchPlayerBySeason: func(_ context.Context, playerExternalID int64, season int) (PlayerRecord, bool, error) {
			if season != 2022 {
				return PlayerRecord{}, false, nil
			}
			return PlayerRecord{
				ExternalID: playerExternalID,
				Statistics: []StatisticRecord{
					{ClubExternalID: 33, ClubName: "Manchester United", LeagueName: "Premier League", Season: 2022},
				},
			}, true, nil
		},
	}
	resolver, _ := newResolverFixture(provider)

	record := PlayerRecord{
		ExternalID: 200,
		Statistics: []StatisticRecord{
			{ClubExternalID: 10, ClubName: "England National Team", ClubNational: true, LeagueName: "Friendlies", Season: 2024},
		},
	}

	resolved, err := resolver.DetermineCurrentClub(context.Background(), record, LeagueRecord{Name: "FIFA World Cup"}, nil, 2024)
	if err != nil {
		t.Fatalf("determine current club failed: %v", err)
	}
	if resolved.Name != "Manchester United" {
		t.Fatalf("expected club from an older season, got %+v", resolved)
	}
}

func TestDetermineCurrentClub_NoDomesticHistoryYieldsFreeAgent(t *testing.T) {
	t.Parallel()

	resolver, _ := newResolverFixture(&fakeProvider{})

	record := PlayerRecord{
		ExternalID: 200,
		Statistics: []StatisticRecord{
			{ClubExternalID: 10, ClubName: "England National Team", ClubNational: true, LeagueName: "Friendlies", Season: 2024},
		},
	}

	resolved, err := resolver.DetermineCurrentClub(context.Background(), record, LeagueRecord{Name: "UEFA Nations League"}, nil, 2024)
	if err != nil {
		t.Fatalf("determine current club failed: %v", err)
	}
	if resolved.Name != club.FreeAgentName {
		t.Fatalf("expected free agent sentinel, got %+v", resolved)
	}
}

func TestDetermineCurrentClub_DomesticPrefersCurrentSeasonInLeague(t *testing.T) {
	t.Parallel()

	resolver, _ := newResolverFixture(&fakeProvider{})

	record := PlayerRecord{
		ExternalID: 200,
		Statistics: []StatisticRecord{
			{ClubExternalID: 51, ClubName: "Brighton", LeagueExternalID: 39, LeagueName: "Premier League", Season: 2023},
			{ClubExternalID: 49, ClubName: "Chelsea", LeagueExternalID: 39, LeagueName: "Premier League", Season: 2024},
		},
	}

	resolved, err := resolver.DetermineCurrentClub(context.Background(), record, LeagueRecord{ExternalID: 39, Name: "Premier League"}, nil, 2024)
	if err != nil {
		t.Fatalf("determine current club failed: %v", err)
	}
	if resolved.Name != "Chelsea" {
		t.Fatalf("expected current season club, got %+v", resolved)
	}
}

func TestDetermineCurrentClub_DomesticFallsBackToRoster(t *testing.T) {
	t.Parallel()

	resolver, store := newResolverFixture(&fakeProvider{})
	ctx := context.Background()

	rosterClub, err := store.Clubs().Save(ctx, club.Club{Name: "Fulham"})
	if err != nil {
		t.Fatalf("seed roster club: %v", err)
	}

	record := PlayerRecord{ExternalID: 200, Name: "Prospect"}
	resolved, err := resolver.DetermineCurrentClub(ctx, record, LeagueRecord{ExternalID: 39, Name: "Premier League"}, []club.Club{rosterClub}, 2024)
	if err != nil {
		t.Fatalf("determine current club failed: %v", err)
	}
	if resolved.ID != rosterClub.ID {
		t.Fatalf("expected roster fallback, got %+v", resolved)
	}
}

func TestDetermineCurrentClub_DomesticWithoutAnySignalYieldsFreeAgent(t *testing.T) {
	t.Parallel()

	resolver, _ := newResolverFixture(&fakeProvider{})

	resolved, err := resolver.DetermineCurrentClub(context.Background(), PlayerRecord{ExternalID: 200}, LeagueRecord{ExternalID: 39, Name: "Premier League"}, nil, 2024)
	if err != nil {
		t.Fatalf("determine current club failed: %v", err)
	}
	if resolved.Name != club.FreeAgentName {
		t.Fatalf("expected free agent sentinel, got %+v", resolved)
	}
}
