package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/country"
)

type countryTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Code      sql.NullString `db:"code"`
	FlagURL   sql.NullString `db:"flag_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m countryTableModel) toDomain() country.Country {
	return country.Country{
		ID:      m.ID,
		Name:    m.Name,
		Code:    m.Code.String,
		FlagURL: m.FlagURL.String,
	}
}

type countryInsertModel struct {
	Name    string  `db:"name"`
	Code    *string `db:"code"`
	FlagURL *string `db:"flag_url"`
}
