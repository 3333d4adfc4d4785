package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/league"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) FindByExternalID(ctx context.Context, externalID int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("external_id", externalID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build find league by external id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("find league by external id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LeagueRepository) FindByNameIgnoreCase(ctx context.Context, name string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Expr("LOWER(name) = LOWER(?)", name),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build find league by name query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("find league by name: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LeagueRepository) Save(ctx context.Context, record league.League) (league.League, error) {
	model := leagueInsertModel{
		ExternalID: record.ExternalID,
		Name:       record.Name,
		Type:       nullableString(record.Type),
		Season:     record.Season,
		CountryID:  record.CountryID,
		LogoURL:    nullableString(record.LogoURL),
	}
	query, args, err := qb.InsertModel("leagues", model, `ON CONFLICT (external_id) WHERE deleted_at IS NULL AND external_id > 0
DO UPDATE SET
    name = EXCLUDED.name,
    type = COALESCE(EXCLUDED.type, leagues.type),
    season = EXCLUDED.season,
    country_id = COALESCE(EXCLUDED.country_id, leagues.country_id),
    logo_url = COALESCE(EXCLUDED.logo_url, leagues.logo_url)
RETURNING id`)
	if err != nil {
		return league.League{}, fmt.Errorf("build save league query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return league.League{}, fmt.Errorf("save league: %w", err)
	}
	return record, nil
}
