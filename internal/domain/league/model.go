package league

import "fmt"

// League is a competition tracked for a single season.
type League struct {
	ID         int64
	ExternalID int64
	Name       string
	Type       string
	Season     int
	CountryID  *int64
	LogoURL    string
}

func (l League) Validate() error {
	if l.ExternalID <= 0 {
		return fmt.Errorf("league external id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season <= 0 {
		return fmt.Errorf("league season is required")
	}

	return nil
}
