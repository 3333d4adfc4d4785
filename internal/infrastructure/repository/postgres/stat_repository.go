package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

type StatRepository struct {
	db *sqlx.DB
}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) FindByKey(ctx context.Context, key playerstat.Key) (playerstat.Statistic, bool, error) {
	query, args, err := qb.Select("*").From("player_statistics").
		Where(
			qb.Eq("player_id", key.PlayerID),
			qb.Eq("club_id", key.ClubID),
			qb.Eq("league_id", key.LeagueID),
			qb.Eq("season", key.Season),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerstat.Statistic{}, false, fmt.Errorf("build find statistic by key query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstat.Statistic{}, false, nil
		}
		return playerstat.Statistic{}, false, fmt.Errorf("find statistic by key: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StatRepository) ListByPlayer(ctx context.Context, playerID int64) ([]playerstat.Statistic, error) {
	query, args, err := qb.Select("*").From("player_statistics").
		Where(
			qb.Eq("player_id", playerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("season DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select statistics by player query: %w", err)
	}

	var rows []statTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select statistics by player: %w", err)
	}

	out := make([]playerstat.Statistic, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Save upserts on the (player, club, league, season) identity so the
// same line fetched twice never duplicates.
func (r *StatRepository) Save(ctx context.Context, record playerstat.Statistic) (playerstat.Statistic, error) {
	model := statInsertModel{
		PlayerID:    record.PlayerID,
		ClubID:      record.ClubID,
		LeagueID:    record.LeagueID,
		Season:      record.Season,
		Position:    nullableString(record.Position),
		Appearances: record.Appearances,
		Lineups:     record.Lineups,
		Minutes:     record.Minutes,
		Goals:       record.Goals,
		Assists:     record.Assists,
		YellowCards: record.YellowCards,
		RedCards:    record.RedCards,
		Rating:      record.Rating,
		Captain:     record.Captain,
	}
	query, args, err := qb.InsertModel("player_statistics", model, `ON CONFLICT (player_id, club_id, league_id, season) WHERE deleted_at IS NULL
DO UPDATE SET
    position = COALESCE(EXCLUDED.position, player_statistics.position),
    appearances = EXCLUDED.appearances,
    lineups = EXCLUDED.lineups,
    minutes = EXCLUDED.minutes,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    rating = EXCLUDED.rating,
    captain = EXCLUDED.captain
RETURNING id`)
	if err != nil {
		return playerstat.Statistic{}, fmt.Errorf("build save statistic query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return playerstat.Statistic{}, fmt.Errorf("save statistic: %w", err)
	}
	return record, nil
}
