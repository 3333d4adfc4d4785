package club

import (
	"fmt"
	"strings"
)

// Sentinel club names used when a player's club cannot be resolved.
const (
	FreeAgentName     = "Free Agent"
	ErrorFallbackName = "Error Fallback Club"
)

// Club is a football club or national team a player can belong to.
type Club struct {
	ID          int64
	ExternalID  *int64
	Name        string
	Country     string
	National    bool
	Founded     int
	Stadium     string
	StadiumCity string
	LogoURL     string
}

func (c Club) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

// IsNationalTeam reports whether the club represents a country rather
// than a domestic side. The name check covers providers that omit the
// national flag on older squads.
func (c Club) IsNationalTeam() bool {
	if c.National {
		return true
	}

	return strings.Contains(strings.ToLower(c.Name), "national team")
}

// IsSentinel reports whether the club is one of the placeholder rows
// created when resolution fails.
func (c Club) IsSentinel() bool {
	return c.Name == FreeAgentName || c.Name == ErrorFallbackName
}
