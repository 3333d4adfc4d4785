package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/injury"
	"github.com/youthscout/talent-tracker/internal/domain/sidelined"
	"github.com/youthscout/talent-tracker/internal/domain/trophy"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

// Player child records are append-only; idempotency is handled upstream
// by skipping already-persisted players.

type InjuryRepository struct {
	db *sqlx.DB
}

func NewInjuryRepository(db *sqlx.DB) *InjuryRepository {
	return &InjuryRepository{db: db}
}

func (r *InjuryRepository) ListByPlayer(ctx context.Context, playerID int64) ([]injury.Injury, error) {
	query, args, err := qb.Select("*").From("player_injuries").
		Where(
			qb.Eq("player_id", playerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select injuries by player query: %w", err)
	}

	var rows []injuryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select injuries by player: %w", err)
	}

	out := make([]injury.Injury, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *InjuryRepository) Save(ctx context.Context, record injury.Injury) (injury.Injury, error) {
	model := injuryInsertModel{
		PlayerID:   record.PlayerID,
		Season:     record.Season,
		InjuryType: nullableString(record.Type),
		Reason:     nullableString(record.Reason),
		InjuryDate: record.Date,
	}
	query, args, err := qb.InsertModel("player_injuries", model, "RETURNING id")
	if err != nil {
		return injury.Injury{}, fmt.Errorf("build save injury query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return injury.Injury{}, fmt.Errorf("save injury: %w", err)
	}
	return record, nil
}

type SidelinedRepository struct {
	db *sqlx.DB
}

func NewSidelinedRepository(db *sqlx.DB) *SidelinedRepository {
	return &SidelinedRepository{db: db}
}

func (r *SidelinedRepository) ListByPlayer(ctx context.Context, playerID int64) ([]sidelined.Spell, error) {
	query, args, err := qb.Select("*").From("player_sidelined").
		Where(
			qb.Eq("player_id", playerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sidelined by player query: %w", err)
	}

	var rows []sidelinedTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sidelined by player: %w", err)
	}

	out := make([]sidelined.Spell, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SidelinedRepository) Save(ctx context.Context, record sidelined.Spell) (sidelined.Spell, error) {
	model := sidelinedInsertModel{
		PlayerID:  record.PlayerID,
		SpellType: nullableString(record.Type),
		StartDate: record.Start,
		EndDate:   record.End,
	}
	query, args, err := qb.InsertModel("player_sidelined", model, "RETURNING id")
	if err != nil {
		return sidelined.Spell{}, fmt.Errorf("build save sidelined query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return sidelined.Spell{}, fmt.Errorf("save sidelined: %w", err)
	}
	return record, nil
}

type TrophyRepository struct {
	db *sqlx.DB
}

func NewTrophyRepository(db *sqlx.DB) *TrophyRepository {
	return &TrophyRepository{db: db}
}

func (r *TrophyRepository) ListByPlayer(ctx context.Context, playerID int64) ([]trophy.Trophy, error) {
	query, args, err := qb.Select("*").From("player_trophies").
		Where(
			qb.Eq("player_id", playerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select trophies by player query: %w", err)
	}

	var rows []trophyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select trophies by player: %w", err)
	}

	out := make([]trophy.Trophy, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TrophyRepository) Save(ctx context.Context, record trophy.Trophy) (trophy.Trophy, error) {
	model := trophyInsertModel{
		PlayerID: record.PlayerID,
		League:   record.League,
		Country:  nullableString(record.Country),
		Season:   nullableString(record.Season),
		Place:    nullableString(record.Place),
	}
	query, args, err := qb.InsertModel("player_trophies", model, "RETURNING id")
	if err != nil {
		return trophy.Trophy{}, fmt.Errorf("build save trophy query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return trophy.Trophy{}, fmt.Errorf("save trophy: %w", err)
	}
	return record, nil
}
