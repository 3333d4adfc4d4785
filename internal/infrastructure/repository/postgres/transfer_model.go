package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/transfer"
)

type transferTableModel struct {
	ID         int64          `db:"id"`
	PlayerID   int64          `db:"player_id"`
	Date       time.Time      `db:"transfer_date"`
	Type       sql.NullString `db:"transfer_type"`
	ClubFromID int64          `db:"club_from_id"`
	ClubToID   int64          `db:"club_to_id"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

func (m transferTableModel) toDomain() transfer.Transfer {
	return transfer.Transfer{
		ID:         m.ID,
		PlayerID:   m.PlayerID,
		Date:       m.Date,
		Type:       m.Type.String,
		ClubFromID: m.ClubFromID,
		ClubToID:   m.ClubToID,
	}
}

type transferInsertModel struct {
	PlayerID   int64     `db:"player_id"`
	Date       time.Time `db:"transfer_date"`
	Type       *string   `db:"transfer_type"`
	ClubFromID int64     `db:"club_from_id"`
	ClubToID   int64     `db:"club_to_id"`
}
