package playerstat

import "fmt"

// Key identifies one statistical line. A player accumulates at most
// one line per club, league and season combination.
type Key struct {
	PlayerID int64
	ClubID   int64
	LeagueID int64
	Season   int
}

// Statistic is a player's aggregated performance for one Key.
type Statistic struct {
	ID          int64
	PlayerID    int64
	ClubID      int64
	LeagueID    int64
	Season      int
	Position    string
	Appearances int
	Lineups     int
	Minutes     int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	Rating      *float64
	Captain     bool
}

func (s Statistic) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("statistic player id is required")
	}
	if s.ClubID <= 0 {
		return fmt.Errorf("statistic club id is required")
	}
	if s.Season <= 0 {
		return fmt.Errorf("statistic season is required")
	}

	return nil
}

// Key returns the identity of the statistical line.
func (s Statistic) Key() Key {
	return Key{PlayerID: s.PlayerID, ClubID: s.ClubID, LeagueID: s.LeagueID, Season: s.Season}
}
