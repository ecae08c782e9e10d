package match

import "strings"

const (
	StatusNotStarted = "NOT_STARTED"
	StatusOngoing    = "ONGOING"
	StatusHalftime   = "HALFTIME"
	StatusEnded      = "ENDED"
	StatusUpcoming   = "UPCOMING"

	// StatusLegacyInProgress is still written by older operator tooling.
	StatusLegacyInProgress = "In Progress"
)

// DisplayOrder is the priority in which status groups are shown on a live board.
var DisplayOrder = []string{
	StatusOngoing,
	StatusHalftime,
	StatusEnded,
	StatusNotStarted,
	StatusUpcoming,
}

// GroupStatus maps a stored status onto one of the DisplayOrder groups.
// Unknown values are returned unchanged.
func GroupStatus(status string) string {
	trimmed := strings.TrimSpace(status)
	if strings.EqualFold(trimmed, StatusLegacyInProgress) {
		return StatusOngoing
	}
	upper := strings.ToUpper(trimmed)
	for _, known := range DisplayOrder {
		if upper == known {
			return known
		}
	}
	return trimmed
}
