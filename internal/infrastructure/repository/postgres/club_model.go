package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/club"
)

type clubTableModel struct {
	ID          int64          `db:"id"`
	ExternalID  sql.NullInt64  `db:"external_id"`
	Name        string         `db:"name"`
	Country     sql.NullString `db:"country"`
	National    bool           `db:"national"`
	Founded     sql.NullInt64  `db:"founded"`
	Stadium     sql.NullString `db:"stadium"`
	StadiumCity sql.NullString `db:"stadium_city"`
	LogoURL     sql.NullString `db:"logo_url"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

func (m clubTableModel) toDomain() club.Club {
	return club.Club{
		ID:          m.ID,
		ExternalID:  nullInt64ToPtr(m.ExternalID),
		Name:        m.Name,
		Country:     m.Country.String,
		National:    m.National,
		Founded:     int(m.Founded.Int64),
		Stadium:     m.Stadium.String,
		StadiumCity: m.StadiumCity.String,
		LogoURL:     m.LogoURL.String,
	}
}

type clubInsertModel struct {
	ExternalID  *int64  `db:"external_id"`
	Name        string  `db:"name"`
	Country     *string `db:"country"`
	National    bool    `db:"national"`
	Founded     *int    `db:"founded"`
	Stadium     *string `db:"stadium"`
	StadiumCity *string `db:"stadium_city"`
	LogoURL     *string `db:"logo_url"`
}
