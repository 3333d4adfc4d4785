package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/league"
)

type leagueTableModel struct {
	ID         int64          `db:"id"`
	ExternalID int64          `db:"external_id"`
	Name       string         `db:"name"`
	Type       sql.NullString `db:"type"`
	Season     int            `db:"season"`
	CountryID  sql.NullInt64  `db:"country_id"`
	LogoURL    sql.NullString `db:"logo_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Type:       m.Type.String,
		Season:     m.Season,
		CountryID:  nullInt64ToPtr(m.CountryID),
		LogoURL:    m.LogoURL.String,
	}
}

type leagueInsertModel struct {
	ExternalID int64   `db:"external_id"`
	Name       string  `db:"name"`
	Type       *string `db:"type"`
	Season     int     `db:"season"`
	CountryID  *int64  `db:"country_id"`
	LogoURL    *string `db:"logo_url"`
}
