package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/domain/injury"
	"github.com/youthscout/talent-tracker/internal/domain/player"
	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
	"github.com/youthscout/talent-tracker/internal/domain/sidelined"
	"github.com/youthscout/talent-tracker/internal/domain/transfer"
	"github.com/youthscout/talent-tracker/internal/domain/trophy"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
)

// Run terminal states.
const (
	RunStatusDone   = "done"
	RunStatusHalted = "halted_on_quota"
	RunStatusFailed = "failed"
)

// stepOutcome is how loop steps report upward instead of unwinding the
// stack: soft failures keep the loop moving, only a halt ends the run.
type stepOutcome int

const (
	outcomeContinue stepOutcome = iota
	outcomeSoftFail
	outcomeHaltRun
)

// CompletionListener receives the terminal status of a run exactly
// once. The scheduler uses it to clear its in-progress gate.
type CompletionListener interface {
	OnPopulationComplete(success bool, message string)
}

// PopulationConfig carries the static inputs of a run.
type PopulationConfig struct {
	LeagueExternalIDs []int64
	CurrentSeason     int
	PageDelay         time.Duration
}

// RunSummary aggregates what one population run accomplished.
type RunSummary struct {
	Status             string
	Message            string
	LeaguesProcessed   int
	PlayersProcessed   int
	PlayersSkipped     int
	StatisticsUpserted int
	TransfersSaved     int
	CallsUsed          int64
	StartedAt          time.Time
	FinishedAt         time.Time
}

// PopulationService walks the configured leagues, discovers U21
// players and persists their full history. One run executes on a
// single worker; the provider call budget is the only shared state.
type PopulationService struct {
	provider      StatsProvider
	reconciler    *ReconcileService
	resolver      *ClubResolver
	playerRepo    player.Repository
	clubRepo      club.Repository
	injuryRepo    injury.Repository
	sidelinedRepo sidelined.Repository
	trophyRepo    trophy.Repository
	budget        *CallBudget
	listener      CompletionListener
	cfg           PopulationConfig
	logger        *logging.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

func NewPopulationService(
	provider StatsProvider,
	reconciler *ReconcileService,
	resolver *ClubResolver,
	playerRepo player.Repository,
	clubRepo club.Repository,
	injuryRepo injury.Repository,
	sidelinedRepo sidelined.Repository,
	trophyRepo trophy.Repository,
	budget *CallBudget,
	listener CompletionListener,
	cfg PopulationConfig,
	logger *logging.Logger,
) *PopulationService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = 500 * time.Millisecond
	}
	return &PopulationService{
		provider:      provider,
		reconciler:    reconciler,
		resolver:      resolver,
		playerRepo:    playerRepo,
		clubRepo:      clubRepo,
		injuryRepo:    injuryRepo,
		sidelinedRepo: sidelinedRepo,
		trophyRepo:    trophyRepo,
		budget:        budget,
		listener:      listener,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
		sleep:         interruptibleSleep,
	}
}

// Run executes one full population pass and reports the terminal
// status to the completion listener exactly once.
func (s *PopulationService) Run(ctx context.Context) RunSummary {
	ctx, span := startUsecaseSpan(ctx, "PopulationService.Run")
	defer span.End()

	s.budget.Reset()
	summary := RunSummary{Status: RunStatusDone, StartedAt: s.now().UTC()}

	for _, leagueExternalID := range s.cfg.LeagueExternalIDs {
		if ctx.Err() != nil {
			summary.Status = RunStatusFailed
			summary.Message = fmt.Sprintf("run interrupted: %v", ctx.Err())
			break
		}
		if s.budget.SoftLimitReached() {
			summary.Status = RunStatusHalted
			s.logger.InfoContext(ctx, "call budget soft limit reached, not starting further leagues",
				"calls_used", s.budget.Used(), "ceiling", s.budget.Ceiling())
			break
		}

		switch s.processLeague(ctx, leagueExternalID, &summary) {
		case outcomeHaltRun:
			summary.Status = RunStatusFailed
		case outcomeContinue:
			summary.LeaguesProcessed++
		case outcomeSoftFail:
			// Logged at the failure site; move to the next league.
		}
		if summary.Status == RunStatusFailed {
			break
		}
	}

	summary.CallsUsed = s.budget.Used()
	summary.FinishedAt = s.now().UTC()
	if summary.Message == "" {
		summary.Message = s.buildMessage(summary)
	}

	s.logger.InfoContext(ctx, "population run finished",
		"status", summary.Status,
		"leagues", summary.LeaguesProcessed,
		"players", summary.PlayersProcessed,
		"players_skipped", summary.PlayersSkipped,
		"statistics", summary.StatisticsUpserted,
		"transfers", summary.TransfersSaved,
		"calls_used", summary.CallsUsed,
	)

	if s.listener != nil {
		s.listener.OnPopulationComplete(summary.Status != RunStatusFailed, summary.Message)
	}
	return summary
}

func (s *PopulationService) buildMessage(summary RunSummary) string {
	switch summary.Status {
	case RunStatusHalted:
		return fmt.Sprintf("halted on call budget after %d/%d calls: %d leagues, %d players processed (partial progress, resume on next run)",
			summary.CallsUsed, s.budget.Ceiling(), summary.LeaguesProcessed, summary.PlayersProcessed)
	case RunStatusFailed:
		return fmt.Sprintf("population failed after %d leagues, %d players, %d calls",
			summary.LeaguesProcessed, summary.PlayersProcessed, summary.CallsUsed)
	default:
		return fmt.Sprintf("population complete: %d leagues, %d players (%d already present), %d statistics, %d transfers, %d calls",
			summary.LeaguesProcessed, summary.PlayersProcessed, summary.PlayersSkipped,
			summary.StatisticsUpserted, summary.TransfersSaved, summary.CallsUsed)
	}
}

func (s *PopulationService) processLeague(ctx context.Context, leagueExternalID int64, summary *RunSummary) stepOutcome {
	leagueRow, err := s.reconciler.ResolveLeague(ctx, LeagueRecord{ExternalID: leagueExternalID}, s.cfg.CurrentSeason)
	if err != nil {
		return s.classifyError(ctx, err, "resolve league", "league_external_id", leagueExternalID)
	}

	records, outcome := s.fetchEligiblePlayers(ctx, leagueExternalID, s.cfg.CurrentSeason)
	if outcome == outcomeHaltRun {
		return outcome
	}
	if len(records) == 0 {
		// A season that has not started yet has no player pages.
		records, outcome = s.fetchEligiblePlayers(ctx, leagueExternalID, s.cfg.CurrentSeason-1)
		if outcome == outcomeHaltRun {
			return outcome
		}
	}
	if len(records) == 0 {
		s.logger.InfoContext(ctx, "no eligible players found for league",
			"league_external_id", leagueExternalID, "season", s.cfg.CurrentSeason)
		return outcomeContinue
	}

	roster, outcome := s.leagueRoster(ctx, leagueRow.ID, leagueExternalID)
	if outcome == outcomeHaltRun {
		return outcome
	}

	leagueRecord := LeagueRecord{
		ExternalID: leagueRow.ExternalID,
		Name:       leagueRow.Name,
		Season:     leagueRow.Season,
	}

	for _, record := range records {
		if ctx.Err() != nil {
			return outcomeHaltRun
		}
		if s.budget.Exhausted() {
			s.logger.InfoContext(ctx, "call budget exhausted, skipping remaining players in league",
				"league_external_id", leagueExternalID, "calls_used", s.budget.Used())
			break
		}

		exists, err := s.playerRepo.ExistsByExternalID(ctx, record.ExternalID)
		if err != nil {
			s.logger.ErrorContext(ctx, "check player exists failed",
				"player_external_id", record.ExternalID, "error", err)
			continue
		}
		if exists {
			summary.PlayersSkipped++
			continue
		}

		switch s.processPlayer(ctx, record, leagueRecord, roster, summary) {
		case outcomeHaltRun:
			return outcomeHaltRun
		case outcomeContinue:
			summary.PlayersProcessed++
		case outcomeSoftFail:
		}
	}

	return outcomeContinue
}

// fetchEligiblePlayers pages through the league listing and keeps only
// U21 players. Page requests are spaced by the configured delay.
func (s *PopulationService) fetchEligiblePlayers(ctx context.Context, leagueExternalID int64, season int) ([]PlayerRecord, stepOutcome) {
	if season <= 0 {
		return nil, outcomeContinue
	}

	now := s.now()
	out := make([]PlayerRecord, 0, 64)
	page := 1
	for {
		records, totalPages, err := s.provider.FetchPlayersPage(ctx, leagueExternalID, season, page)
		if err != nil {
			return out, s.classifyError(ctx, err, "fetch players page",
				"league_external_id", leagueExternalID, "season", season, "page", page)
		}

		for _, record := range records {
			probe := player.Player{DateOfBirth: record.DateOfBirth}
			if probe.IsU21Eligible(now) {
				out = append(out, record)
			}
		}

		if totalPages <= page {
			break
		}
		page++
		s.sleep(ctx, s.cfg.PageDelay)
	}
	return out, outcomeContinue
}

// leagueRoster prefers clubs already linked to the league through
// persisted statistics and only calls the provider when none exist.
func (s *PopulationService) leagueRoster(ctx context.Context, leagueID, leagueExternalID int64) ([]club.Club, stepOutcome) {
	roster, err := s.clubRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "list persisted league clubs failed",
			"league_id", leagueID, "error", err)
	}
	if len(roster) > 0 {
		return roster, outcomeContinue
	}

	records, err := s.provider.FetchClubsByLeague(ctx, leagueExternalID, s.cfg.CurrentSeason)
	if err != nil {
		return nil, s.classifyError(ctx, err, "fetch league clubs", "league_external_id", leagueExternalID)
	}

	out := make([]club.Club, 0, len(records))
	for _, record := range records {
		resolved, err := s.reconciler.ResolveClub(ctx, record, nil)
		if err != nil {
			return out, s.classifyError(ctx, err, "resolve roster club", "club_external_id", record.ExternalID)
		}
		out = append(out, resolved)
	}
	return out, outcomeContinue
}

func (s *PopulationService) processPlayer(
	ctx context.Context,
	record PlayerRecord,
	contextLeague LeagueRecord,
	roster []club.Club,
	summary *RunSummary,
) stepOutcome {
	merged, outcome := s.fetchFullHistory(ctx, record)
	if outcome == outcomeHaltRun {
		return outcome
	}

	currentClub, err := s.resolver.DetermineCurrentClub(ctx, merged, contextLeague, roster, s.cfg.CurrentSeason)
	if err != nil {
		return s.classifyError(ctx, err, "determine current club", "player_external_id", merged.ExternalID)
	}

	row := player.Player{
		ExternalID:    merged.ExternalID,
		Name:          merged.Name,
		FirstName:     merged.FirstName,
		LastName:      merged.LastName,
		DateOfBirth:   merged.DateOfBirth,
		Nationality:   merged.Nationality,
		HeightCM:      merged.HeightCM,
		WeightKG:      merged.WeightKG,
		CurrentClubID: currentClub.ID,
		PhotoURL:      merged.PhotoURL,
	}
	saved, err := s.playerRepo.Save(ctx, row)
	if err != nil {
		s.logger.ErrorContext(ctx, "save player failed",
			"player_external_id", merged.ExternalID, "error", err)
		return outcomeSoftFail
	}

	if outcome := s.persistStatistics(ctx, saved, merged.Statistics, summary); outcome == outcomeHaltRun {
		return outcome
	}
	if outcome := s.persistTransfers(ctx, saved, summary); outcome == outcomeHaltRun {
		return outcome
	}
	if outcome := s.persistInjuries(ctx, saved); outcome == outcomeHaltRun {
		return outcome
	}
	if outcome := s.persistSidelined(ctx, saved); outcome == outcomeHaltRun {
		return outcome
	}
	if outcome := s.persistTrophies(ctx, saved); outcome == outcomeHaltRun {
		return outcome
	}

	return outcomeContinue
}

// fetchFullHistory merges the league-page record with every season the
// provider knows for the player. Partial history is acceptable; only a
// daily-limit rejection stops the merge.
func (s *PopulationService) fetchFullHistory(ctx context.Context, record PlayerRecord) (PlayerRecord, stepOutcome) {
	seasons, err := s.provider.FetchPlayerSeasons(ctx, record.ExternalID)
	if err != nil {
		return record, s.classifyError(ctx, err, "fetch player seasons", "player_external_id", record.ExternalID)
	}

	loaded := make(map[playerstat.Key]struct{}, len(record.Statistics))
	for _, stat := range record.Statistics {
		loaded[statRecordKey(stat)] = struct{}{}
	}
	seasonLoaded := make(map[int]struct{}, len(record.Statistics))
	for _, stat := range record.Statistics {
		seasonLoaded[stat.Season] = struct{}{}
	}

	for _, season := range seasons {
		if _, ok := seasonLoaded[season]; ok {
			continue
		}
		fetched, found, err := s.provider.FetchPlayerBySeason(ctx, record.ExternalID, season)
		if err != nil {
			return record, s.classifyError(ctx, err, "fetch player season",
				"player_external_id", record.ExternalID, "season", season)
		}
		if !found {
			continue
		}

		record.Name = firstNonEmptyString(record.Name, fetched.Name)
		record.FirstName = firstNonEmptyString(record.FirstName, fetched.FirstName)
		record.LastName = firstNonEmptyString(record.LastName, fetched.LastName)
		record.Nationality = firstNonEmptyString(record.Nationality, fetched.Nationality)
		record.PhotoURL = firstNonEmptyString(record.PhotoURL, fetched.PhotoURL)
		if record.DateOfBirth == nil {
			record.DateOfBirth = fetched.DateOfBirth
		}
		if record.HeightCM == nil {
			record.HeightCM = fetched.HeightCM
		}
		if record.WeightKG == nil {
			record.WeightKG = fetched.WeightKG
		}

		for _, stat := range fetched.Statistics {
			key := statRecordKey(stat)
			if _, ok := loaded[key]; ok {
				continue
			}
			loaded[key] = struct{}{}
			record.Statistics = append(record.Statistics, stat)
		}
	}

	return record, outcomeContinue
}

func (s *PopulationService) persistStatistics(ctx context.Context, row player.Player, stats []StatisticRecord, summary *RunSummary) stepOutcome {
	for _, stat := range stats {
		statClub, err := s.reconciler.ResolveClub(ctx, ClubRecord{
			ExternalID: stat.ClubExternalID,
			Name:       stat.ClubName,
			National:   stat.ClubNational,
		}, nil)
		if err != nil {
			if outcome := s.classifyError(ctx, err, "resolve statistic club",
				"player_id", row.ID, "club_external_id", stat.ClubExternalID); outcome == outcomeHaltRun {
				return outcome
			}
			continue
		}

		statLeague, err := s.reconciler.ResolveLeague(ctx, LeagueRecord{
			ExternalID: stat.LeagueExternalID,
			Name:       stat.LeagueName,
			Season:     stat.Season,
		}, s.cfg.CurrentSeason)
		if err != nil {
			if outcome := s.classifyError(ctx, err, "resolve statistic league",
				"player_id", row.ID, "league_external_id", stat.LeagueExternalID); outcome == outcomeHaltRun {
				return outcome
			}
			continue
		}

		season := stat.Season
		if season <= 0 {
			season = s.cfg.CurrentSeason
		}
		if _, err := s.reconciler.UpsertStatistic(ctx, playerstat.Statistic{
			PlayerID:    row.ID,
			ClubID:      statClub.ID,
			LeagueID:    statLeague.ID,
			Season:      season,
			Position:    stat.Position,
			Appearances: stat.Appearances,
			Lineups:     stat.Lineups,
			Minutes:     stat.Minutes,
			Goals:       stat.Goals,
			Assists:     stat.Assists,
			YellowCards: stat.YellowCards,
			RedCards:    stat.RedCards,
			Rating:      stat.Rating,
			Captain:     stat.Captain,
		}); err != nil {
			s.logger.ErrorContext(ctx, "upsert statistic failed",
				"player_id", row.ID, "club_id", statClub.ID, "season", season, "error", err)
			continue
		}
		summary.StatisticsUpserted++
	}
	return outcomeContinue
}

func (s *PopulationService) persistTransfers(ctx context.Context, row player.Player, summary *RunSummary) stepOutcome {
	records, err := s.provider.FetchTransfers(ctx, row.ExternalID)
	if err != nil {
		return s.classifyError(ctx, err, "fetch transfers", "player_id", row.ID)
	}

	for _, record := range records {
		clubFrom, err := s.reconciler.ResolveClub(ctx, ClubRecord{ExternalID: record.ClubOutExternal, Name: record.ClubOutName}, nil)
		if err != nil {
			if outcome := s.classifyError(ctx, err, "resolve transfer origin club", "player_id", row.ID); outcome == outcomeHaltRun {
				return outcome
			}
			continue
		}
		clubTo, err := s.reconciler.ResolveClub(ctx, ClubRecord{ExternalID: record.ClubInExternalID, Name: record.ClubInName}, nil)
		if err != nil {
			if outcome := s.classifyError(ctx, err, "resolve transfer destination club", "player_id", row.ID); outcome == outcomeHaltRun {
				return outcome
			}
			continue
		}

		saved, err := s.reconciler.SaveTransfer(ctx, transfer.Transfer{
			PlayerID:   row.ID,
			Date:       record.Date,
			Type:       record.Type,
			ClubFromID: clubFrom.ID,
			ClubToID:   clubTo.ID,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "save transfer failed", "player_id", row.ID, "error", err)
			continue
		}
		if saved {
			summary.TransfersSaved++
		}
	}
	return outcomeContinue
}

func (s *PopulationService) persistInjuries(ctx context.Context, row player.Player) stepOutcome {
	records, err := s.provider.FetchInjuries(ctx, row.ExternalID, s.cfg.CurrentSeason)
	if err != nil {
		return s.classifyError(ctx, err, "fetch injuries", "player_id", row.ID)
	}

	for _, record := range records {
		if _, err := s.injuryRepo.Save(ctx, injury.Injury{
			PlayerID: row.ID,
			Season:   record.Season,
			Type:     record.Type,
			Reason:   record.Reason,
			Date:     record.Date,
		}); err != nil {
			s.logger.ErrorContext(ctx, "save injury failed", "player_id", row.ID, "error", err)
		}
	}
	return outcomeContinue
}

func (s *PopulationService) persistSidelined(ctx context.Context, row player.Player) stepOutcome {
	records, err := s.provider.FetchSidelined(ctx, row.ExternalID)
	if err != nil {
		return s.classifyError(ctx, err, "fetch sidelined", "player_id", row.ID)
	}

	for _, record := range records {
		if _, err := s.sidelinedRepo.Save(ctx, sidelined.Spell{
			PlayerID: row.ID,
			Type:     record.Type,
			Start:    record.Start,
			End:      record.End,
		}); err != nil {
			s.logger.ErrorContext(ctx, "save sidelined spell failed", "player_id", row.ID, "error", err)
		}
	}
	return outcomeContinue
}

func (s *PopulationService) persistTrophies(ctx context.Context, row player.Player) stepOutcome {
	records, err := s.provider.FetchTrophies(ctx, row.ExternalID)
	if err != nil {
		return s.classifyError(ctx, err, "fetch trophies", "player_id", row.ID)
	}

	for _, record := range records {
		if _, err := s.trophyRepo.Save(ctx, trophy.Trophy{
			PlayerID: row.ID,
			League:   record.League,
			Country:  record.Country,
			Season:   record.Season,
			Place:    record.Place,
		}); err != nil {
			s.logger.ErrorContext(ctx, "save trophy failed", "player_id", row.ID, "error", err)
		}
	}
	return outcomeContinue
}

// classifyError turns an error into a loop outcome. Daily-limit
// rejections and cancellation halt the run; anything else is logged
// and absorbed.
func (s *PopulationService) classifyError(ctx context.Context, err error, operation string, args ...any) stepOutcome {
	if stderrors.Is(err, ErrDailyLimitExceeded) {
		s.logger.ErrorContext(ctx, "daily request limit exceeded, halting run", append(args, "operation", operation, "error", err)...)
		return outcomeHaltRun
	}
	if ctx.Err() != nil {
		return outcomeHaltRun
	}
	s.logger.WarnContext(ctx, "population step failed, continuing", append(args, "operation", operation, "error", err)...)
	return outcomeSoftFail
}

func statRecordKey(stat StatisticRecord) playerstat.Key {
	return playerstat.Key{
		PlayerID: 0,
		ClubID:   stat.ClubExternalID,
		LeagueID: stat.LeagueExternalID,
		Season:   stat.Season,
	}
}

// interruptibleSleep waits for the delay but treats cancellation as
// "proceed immediately" so a shutdown never corrupts loop state.
func interruptibleSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
