package country

import "fmt"

// Country is a national association a league or player belongs to.
type Country struct {
	ID      int64
	Name    string
	Code    string
	FlagURL string
}

func (c Country) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("country name is required")
	}
	if len(c.Code) > 10 {
		return fmt.Errorf("country code cannot exceed 10 characters")
	}

	return nil
}
