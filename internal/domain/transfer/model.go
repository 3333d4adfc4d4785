package transfer

import (
	"fmt"
	"time"
)

// Transfer records a player moving between two clubs on a date.
type Transfer struct {
	ID         int64
	PlayerID   int64
	Date       time.Time
	Type       string
	ClubFromID int64
	ClubToID   int64
}

func (t Transfer) Validate() error {
	if t.PlayerID <= 0 {
		return fmt.Errorf("transfer player id is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transfer date is required")
	}

	return nil
}

// Identity is the natural key used to deduplicate provider rows.
type Identity struct {
	PlayerID   int64
	Date       time.Time
	ClubFromID int64
	ClubToID   int64
}

// Identity returns the transfer's deduplication key.
func (t Transfer) Identity() Identity {
	return Identity{PlayerID: t.PlayerID, Date: t.Date, ClubFromID: t.ClubFromID, ClubToID: t.ClubToID}
}
