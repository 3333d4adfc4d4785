package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/injury"
	"github.com/youthscout/talent-tracker/internal/domain/sidelined"
	"github.com/youthscout/talent-tracker/internal/domain/trophy"
)

type injuryTableModel struct {
	ID         int64          `db:"id"`
	PlayerID   int64          `db:"player_id"`
	Season     int            `db:"season"`
	InjuryType sql.NullString `db:"injury_type"`
	Reason     sql.NullString `db:"reason"`
	InjuryDate *time.Time     `db:"injury_date"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

func (m injuryTableModel) toDomain() injury.Injury {
	return injury.Injury{
		ID:       m.ID,
		PlayerID: m.PlayerID,
		Season:   m.Season,
		Type:     m.InjuryType.String,
		Reason:   m.Reason.String,
		Date:     m.InjuryDate,
	}
}

type injuryInsertModel struct {
	PlayerID   int64      `db:"player_id"`
	Season     int        `db:"season"`
	InjuryType *string    `db:"injury_type"`
	Reason     *string    `db:"reason"`
	InjuryDate *time.Time `db:"injury_date"`
}

type sidelinedTableModel struct {
	ID        int64          `db:"id"`
	PlayerID  int64          `db:"player_id"`
	SpellType sql.NullString `db:"spell_type"`
	StartDate *time.Time     `db:"start_date"`
	EndDate   *time.Time     `db:"end_date"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m sidelinedTableModel) toDomain() sidelined.Spell {
	return sidelined.Spell{
		ID:       m.ID,
		PlayerID: m.PlayerID,
		Type:     m.SpellType.String,
		Start:    m.StartDate,
		End:      m.EndDate,
	}
}

type sidelinedInsertModel struct {
	PlayerID  int64      `db:"player_id"`
	SpellType *string    `db:"spell_type"`
	StartDate *time.Time `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
}

type trophyTableModel struct {
	ID        int64          `db:"id"`
	PlayerID  int64          `db:"player_id"`
	League    string         `db:"league"`
	Country   sql.NullString `db:"country"`
	Season    sql.NullString `db:"season"`
	Place     sql.NullString `db:"place"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m trophyTableModel) toDomain() trophy.Trophy {
	return trophy.Trophy{
		ID:       m.ID,
		PlayerID: m.PlayerID,
		League:   m.League,
		Country:  m.Country.String,
		Season:   m.Season.String,
		Place:    m.Place.String,
	}
}

type trophyInsertModel struct {
	PlayerID int64   `db:"player_id"`
	League   string  `db:"league"`
	Country  *string `db:"country"`
	Season   *string `db:"season"`
	Place    *string `db:"place"`
}
