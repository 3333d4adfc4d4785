package postgres

import (
	"database/sql"
	"time"

	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
)

type statTableModel struct {
	ID          int64           `db:"id"`
	PlayerID    int64           `db:"player_id"`
	ClubID      int64           `db:"club_id"`
	LeagueID    int64           `db:"league_id"`
	Season      int             `db:"season"`
	Position    sql.NullString  `db:"position"`
	Appearances int             `db:"appearances"`
	Lineups     int             `db:"lineups"`
	Minutes     int             `db:"minutes"`
	Goals       int             `db:"goals"`
	Assists     int             `db:"assists"`
	YellowCards int             `db:"yellow_cards"`
	RedCards    int             `db:"red_cards"`
	Rating      sql.NullFloat64 `db:"rating"`
	Captain     bool            `db:"captain"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at"`
}

func (m statTableModel) toDomain() playerstat.Statistic {
	out := playerstat.Statistic{
		ID:          m.ID,
		PlayerID:    m.PlayerID,
		ClubID:      m.ClubID,
		LeagueID:    m.LeagueID,
		Season:      m.Season,
		Position:    m.Position.String,
		Appearances: m.Appearances,
		Lineups:     m.Lineups,
		Minutes:     m.Minutes,
		Goals:       m.Goals,
		Assists:     m.Assists,
		YellowCards: m.YellowCards,
		RedCards:    m.RedCards,
		Captain:     m.Captain,
	}
	if m.Rating.Valid {
		rating := m.Rating.Float64
		out.Rating = &rating
	}
	return out
}

type statInsertModel struct {
	PlayerID    int64    `db:"player_id"`
	ClubID      int64    `db:"club_id"`
	LeagueID    int64    `db:"league_id"`
	Season      int      `db:"season"`
	Position    *string  `db:"position"`
	Appearances int      `db:"appearances"`
	Lineups     int      `db:"lineups"`
	Minutes     int      `db:"minutes"`
	Goals       int      `db:"goals"`
	Assists     int      `db:"assists"`
	YellowCards int      `db:"yellow_cards"`
	RedCards    int      `db:"red_cards"`
	Rating      *float64 `db:"rating"`
	Captain     bool     `db:"captain"`
}
