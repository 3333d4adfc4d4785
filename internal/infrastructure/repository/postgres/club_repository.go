package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/club"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) FindByExternalID(ctx context.Context, externalID int64) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(
			qb.Eq("external_id", externalID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build find club by external id query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("find club by external id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ClubRepository) FindByNameIgnoreCase(ctx context.Context, name string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(
			qb.Expr("LOWER(name) = LOWER(?)", name),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build find club by name query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("find club by name: %w", err)
	}
	return row.toDomain(), true, nil
}

// ListByLeague returns the clubs linked to a league through persisted
// statistic rows.
func (r *ClubRepository) ListByLeague(ctx context.Context, leagueID int64) ([]club.Club, error) {
	query, args, err := qb.Select("DISTINCT c.*").From("clubs c").
		Where(
			qb.Expr("c.id IN (SELECT club_id FROM player_statistics WHERE league_id = ? AND deleted_at IS NULL)", leagueID),
			qb.IsNull("c.deleted_at"),
		).
		OrderBy("c.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ClubRepository) Save(ctx context.Context, record club.Club) (club.Club, error) {
	model := clubInsertModel{
		ExternalID:  record.ExternalID,
		Name:        record.Name,
		Country:     nullableString(record.Country),
		National:    record.National,
		Founded:     nullableInt(record.Founded),
		Stadium:     nullableString(record.Stadium),
		StadiumCity: nullableString(record.StadiumCity),
		LogoURL:     nullableString(record.LogoURL),
	}
	query, args, err := qb.InsertModel("clubs", model, `ON CONFLICT (external_id) WHERE deleted_at IS NULL AND external_id IS NOT NULL
DO UPDATE SET
    name = EXCLUDED.name,
    country = COALESCE(EXCLUDED.country, clubs.country),
    national = EXCLUDED.national,
    founded = COALESCE(EXCLUDED.founded, clubs.founded),
    stadium = COALESCE(EXCLUDED.stadium, clubs.stadium),
    stadium_city = COALESCE(EXCLUDED.stadium_city, clubs.stadium_city),
    logo_url = COALESCE(EXCLUDED.logo_url, clubs.logo_url)
RETURNING id`)
	if err != nil {
		return club.Club{}, fmt.Errorf("build save club query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return club.Club{}, fmt.Errorf("save club: %w", err)
	}
	return record, nil
}
