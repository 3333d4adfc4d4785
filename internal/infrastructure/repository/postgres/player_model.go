package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/player"
)

type playerTableModel struct {
	ID            int64          `db:"id"`
	ExternalID    int64          `db:"external_id"`
	Name          string         `db:"name"`
	FirstName     sql.NullString `db:"first_name"`
	LastName      sql.NullString `db:"last_name"`
	DateOfBirth   *time.Time     `db:"date_of_birth"`
	Nationality   sql.NullString `db:"nationality"`
	HeightCM      sql.NullInt64  `db:"height_cm"`
	WeightKG      sql.NullInt64  `db:"weight_kg"`
	CurrentClubID int64          `db:"current_club_id"`
	PhotoURL      sql.NullString `db:"photo_url"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:            m.ID,
		ExternalID:    m.ExternalID,
		Name:          m.Name,
		FirstName:     m.FirstName.String,
		LastName:      m.LastName.String,
		DateOfBirth:   m.DateOfBirth,
		Nationality:   m.Nationality.String,
		HeightCM:      nullIntPtr(m.HeightCM),
		WeightKG:      nullIntPtr(m.WeightKG),
		CurrentClubID: m.CurrentClubID,
		PhotoURL:      m.PhotoURL.String,
	}
}

type playerInsertModel struct {
	ExternalID    int64      `db:"external_id"`
	Name          string     `db:"name"`
	FirstName     *string    `db:"first_name"`
	LastName      *string    `db:"last_name"`
	DateOfBirth   *time.Time `db:"date_of_birth"`
	Nationality   *string    `db:"nationality"`
	HeightCM      *int       `db:"height_cm"`
	WeightKG      *int       `db:"weight_kg"`
	CurrentClubID int64      `db:"current_club_id"`
	PhotoURL      *string    `db:"photo_url"`
}
