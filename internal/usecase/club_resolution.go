package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
)

// Keyword fragments that mark a league as a national or continental
// competition. Substring matching is deliberately loose and can
// misclassify a domestic league whose name carries one of these
// tokens; club attribution from such leagues is best-effort.
var internationalLeagueKeywords = []string{
	"uefa",
	"fifa",
	"conmebol",
	"concacaf",
	"caf ",
	"afc ",
	"world",
	"euro",
	"copa america",
	"nations",
	"friendlies",
	"olympic",
	"international",
	"africa cup",
	"asian cup",
	"gold cup",
	"confederations",
}

// ClubResolver decides which club row counts as a player's current
// club, distinguishing national-team competitions from domestic ones.
type ClubResolver struct {
	reconciler *ReconcileService
	provider   StatsProvider
	logger     *logging.Logger
}

func NewClubResolver(reconciler *ReconcileService, provider StatsProvider, logger *logging.Logger) *ClubResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &ClubResolver{
		reconciler: reconciler,
		provider:   provider,
		logger:     logger,
	}
}

// IsInternationalCompetition classifies a league name by keyword.
func IsInternationalCompetition(leagueName string) bool {
	value := strings.ToLower(strings.TrimSpace(leagueName))
	if value == "" {
		return false
	}
	for _, keyword := range internationalLeagueKeywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}

// DetermineCurrentClub picks the club a player should be attached to.
// For national-team competitions the player's statistic history is
// searched for the latest domestic club, pulling extra past seasons
// from the provider when the loaded history has none. For domestic
// competitions the context league and its roster break ties.
func (r *ClubResolver) DetermineCurrentClub(
	ctx context.Context,
	record PlayerRecord,
	contextLeague LeagueRecord,
	roster []club.Club,
	currentSeason int,
) (club.Club, error) {
	stats := sortedStatsBySeasonDesc(record.Statistics)

	if IsInternationalCompetition(contextLeague.Name) {
		return r.resolveFromHistory(ctx, record, stats)
	}
	return r.resolveDomestic(ctx, stats, contextLeague, roster, currentSeason)
}

func (r *ClubResolver) resolveFromHistory(ctx context.Context, record PlayerRecord, stats []StatisticRecord) (club.Club, error) {
	if found, stat := latestDomesticStat(stats); found {
		return r.resolveStatClub(ctx, stat)
	}

	// Nothing domestic in the loaded history; walk older seasons.
	seasons, err := r.provider.FetchPlayerSeasons(ctx, record.ExternalID)
	if err != nil {
		return club.Club{}, err
	}
	loaded := make(map[int]struct{}, len(stats))
	for _, stat := range stats {
		loaded[stat.Season] = struct{}{}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seasons)))

	for _, season := range seasons {
		if _, ok := loaded[season]; ok {
			continue
		}
		past, fetched, err := r.provider.FetchPlayerBySeason(ctx, record.ExternalID, season)
		if err != nil {
			return club.Club{}, err
		}
		if !fetched {
			continue
		}
		if found, stat := latestDomesticStat(sortedStatsBySeasonDesc(past.Statistics)); found {
			return r.resolveStatClub(ctx, stat)
		}
	}

	r.logger.WarnContext(ctx, "no domestic club found in any season, assigning free agent",
		"player_external_id", record.ExternalID, "player_name", record.Name)
	return r.reconciler.SentinelClub(ctx, club.FreeAgentName)
}

func (r *ClubResolver) resolveDomestic(
	ctx context.Context,
	stats []StatisticRecord,
	contextLeague LeagueRecord,
	roster []club.Club,
	currentSeason int,
) (club.Club, error) {
	var inLeague []StatisticRecord
	for _, stat := range stats {
		if statMatchesLeague(stat, contextLeague) {
			inLeague = append(inLeague, stat)
		}
	}

	for _, stat := range inLeague {
		if stat.Season == currentSeason {
			return r.resolveStatClub(ctx, stat)
		}
	}
	if len(inLeague) > 0 {
		return r.resolveStatClub(ctx, inLeague[0])
	}

	if found, stat := latestDomesticStat(stats); found && clubInRoster(roster, stat) {
		return r.resolveStatClub(ctx, stat)
	}

	if len(roster) > 0 {
		return roster[0], nil
	}

	return r.reconciler.SentinelClub(ctx, club.FreeAgentName)
}

func (r *ClubResolver) resolveStatClub(ctx context.Context, stat StatisticRecord) (club.Club, error) {
	return r.reconciler.ResolveClub(ctx, ClubRecord{
		ExternalID: stat.ClubExternalID,
		Name:       stat.ClubName,
		National:   stat.ClubNational,
	}, nil)
}

func sortedStatsBySeasonDesc(stats []StatisticRecord) []StatisticRecord {
	out := make([]StatisticRecord, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Season > out[j].Season })
	return out
}

// latestDomesticStat returns the most recent statistic whose club is
// not a national team and whose league is not an international
// competition. The input must already be sorted newest first.
func latestDomesticStat(stats []StatisticRecord) (bool, StatisticRecord) {
	for _, stat := range stats {
		if statIsNationalTeam(stat) || IsInternationalCompetition(stat.LeagueName) {
			continue
		}
		if stat.ClubExternalID <= 0 && strings.TrimSpace(stat.ClubName) == "" {
			continue
		}
		return true, stat
	}
	return false, StatisticRecord{}
}

func statIsNationalTeam(stat StatisticRecord) bool {
	if stat.ClubNational {
		return true
	}
	return strings.Contains(strings.ToLower(stat.ClubName), "national team")
}

func statMatchesLeague(stat StatisticRecord, contextLeague LeagueRecord) bool {
	if contextLeague.ExternalID > 0 && stat.LeagueExternalID == contextLeague.ExternalID {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(stat.LeagueName), strings.TrimSpace(contextLeague.Name))
}

func clubInRoster(roster []club.Club, stat StatisticRecord) bool {
	for _, item := range roster {
		if item.ExternalID != nil && stat.ClubExternalID > 0 && *item.ExternalID == stat.ClubExternalID {
			return true
		}
		if strings.EqualFold(strings.TrimSpace(item.Name), strings.TrimSpace(stat.ClubName)) {
			return true
		}
	}
	return false
}
