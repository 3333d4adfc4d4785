package sidelined

import (
	"fmt"
	"time"
)

// Spell is a period a player spent unavailable for selection.
type Spell struct {
	ID       int64
	PlayerID int64
	Type     string
	Start    *time.Time
	End      *time.Time
}

func (s Spell) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("sidelined player id is required")
	}

	return nil
}
