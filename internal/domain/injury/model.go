package injury

import (
	"fmt"
	"time"
)

// Injury is a reported fitness problem tied to a fixture window.
type Injury struct {
	ID       int64
	PlayerID int64
	Season   int
	Type     string
	Reason   string
	Date     *time.Time
}

func (i Injury) Validate() error {
	if i.PlayerID <= 0 {
		return fmt.Errorf("injury player id is required")
	}

	return nil
}
