package player

import (
	"fmt"
	"time"
)

// U21MaxAge is the oldest age at which a player still counts as a
// youth prospect. A player turning 22 today is already out.
const U21MaxAge = 21

// Player is a tracked athlete populated from the external provider.
type Player struct {
	ID            int64
	ExternalID    int64
	Name          string
	FirstName     string
	LastName      string
	DateOfBirth   *time.Time
	Nationality   string
	HeightCM      *int
	WeightKG      *int
	CurrentClubID int64
	PhotoURL      string
}

func (p Player) Validate() error {
	if p.ExternalID <= 0 {
		return fmt.Errorf("player external id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// AgeAt returns the player's age in completed years at the given
// moment, or false when the date of birth is unknown.
func (p Player) AgeAt(now time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}

	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}

	return age, true
}

// IsU21Eligible reports whether the player is at most U21MaxAge years
// old. Unknown birth dates are treated as not eligible.
func (p Player) IsU21Eligible(now time.Time) bool {
	age, ok := p.AgeAt(now)
	if !ok {
		return false
	}

	return age <= U21MaxAge
}
