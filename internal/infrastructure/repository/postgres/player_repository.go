package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/player"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) FindByExternalID(ctx context.Context, externalID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("external_id", externalID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build find player by external id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("find player by external id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ExistsByExternalID(ctx context.Context, externalID int64) (bool, error) {
	query, args, err := qb.Select("1").From("players").
		Where(
			qb.Eq("external_id", externalID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build player exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check player exists: %w", err)
	}
	return true, nil
}

func (r *PlayerRepository) Save(ctx context.Context, record player.Player) (player.Player, error) {
	model := playerInsertModel{
		ExternalID:    record.ExternalID,
		Name:          record.Name,
		FirstName:     nullableString(record.FirstName),
		LastName:      nullableString(record.LastName),
		DateOfBirth:   record.DateOfBirth,
		Nationality:   nullableString(record.Nationality),
		HeightCM:      record.HeightCM,
		WeightKG:      record.WeightKG,
		CurrentClubID: record.CurrentClubID,
		PhotoURL:      nullableString(record.PhotoURL),
	}
	query, args, err := qb.InsertModel("players", model, `ON CONFLICT (external_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    first_name = COALESCE(EXCLUDED.first_name, players.first_name),
    last_name = COALESCE(EXCLUDED.last_name, players.last_name),
    date_of_birth = COALESCE(EXCLUDED.date_of_birth, players.date_of_birth),
    nationality = COALESCE(EXCLUDED.nationality, players.nationality),
    height_cm = COALESCE(EXCLUDED.height_cm, players.height_cm),
    weight_kg = COALESCE(EXCLUDED.weight_kg, players.weight_kg),
    current_club_id = EXCLUDED.current_club_id,
    photo_url = COALESCE(EXCLUDED.photo_url, players.photo_url)
RETURNING id`)
	if err != nil {
		return player.Player{}, fmt.Errorf("build save player query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("save player: %w", err)
	}
	return record, nil
}
