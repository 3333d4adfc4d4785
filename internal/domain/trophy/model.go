package trophy

import "fmt"

// Trophy is an honour won or contested by a player.
type Trophy struct {
	ID       int64
	PlayerID int64
	League   string
	Country  string
	Season   string
	Place    string
}

func (t Trophy) Validate() error {
	if t.PlayerID <= 0 {
		return fmt.Errorf("trophy player id is required")
	}
	if t.League == "" {
		return fmt.Errorf("trophy league is required")
	}

	return nil
}
