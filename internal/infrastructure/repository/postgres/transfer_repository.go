package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/transfer"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

type TransferRepository struct {
	db *sqlx.DB
}

func NewTransferRepository(db *sqlx.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Exists(ctx context.Context, identity transfer.Identity) (bool, error) {
	query, args, err := qb.Select("1").From("player_transfers").
		Where(
			qb.Eq("player_id", identity.PlayerID),
			qb.Eq("transfer_date", identity.Date),
			qb.Eq("club_from_id", identity.ClubFromID),
			qb.Eq("club_to_id", identity.ClubToID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build transfer exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check transfer exists: %w", err)
	}
	return true, nil
}

func (r *TransferRepository) ListByPlayer(ctx context.Context, playerID int64) ([]transfer.Transfer, error) {
	query, args, err := qb.Select("*").From("player_transfers").
		Where(
			qb.Eq("player_id", playerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("transfer_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select transfers by player query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select transfers by player: %w", err)
	}

	out := make([]transfer.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TransferRepository) Save(ctx context.Context, record transfer.Transfer) (transfer.Transfer, error) {
	model := transferInsertModel{
		PlayerID:   record.PlayerID,
		Date:       record.Date,
		Type:       nullableString(record.Type),
		ClubFromID: record.ClubFromID,
		ClubToID:   record.ClubToID,
	}
	query, args, err := qb.InsertModel("player_transfers", model, `ON CONFLICT (player_id, transfer_date, club_from_id, club_to_id) WHERE deleted_at IS NULL
DO UPDATE SET
    transfer_type = COALESCE(EXCLUDED.transfer_type, player_transfers.transfer_type)
RETURNING id`)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("build save transfer query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return transfer.Transfer{}, fmt.Errorf("save transfer: %w", err)
	}
	return record, nil
}
