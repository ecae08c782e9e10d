package live

import (
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
)

// LiveMatch is a match with its derived minute at the snapshot time.
type LiveMatch struct {
	Match   match.Match
	Minute  int
	Display string
}

// NewLiveMatch derives the minute of item at now.
func NewLiveMatch(item match.Match, now time.Time) LiveMatch {
	minute := match.DeriveMinute(item.Clock(), now)
	return LiveMatch{
		Match:   item,
		Minute:  minute,
		Display: match.FormatMinute(minute),
	}
}

// GroupByStatus orders matches by match.DisplayOrder. Order inside a group
// follows the input. Statuses outside the known set come last, in input order.
func GroupByStatus(items []match.Match) []match.Match {
	return groupByStatus(items, func(item match.Match) string { return item.Status })
}

// GroupLiveByStatus is GroupByStatus for derived rows.
func GroupLiveByStatus(items []LiveMatch) []LiveMatch {
	return groupByStatus(items, func(item LiveMatch) string { return item.Match.Status })
}

func groupByStatus[T any](items []T, status func(T) string) []T {
	buckets := make(map[string][]T, len(match.DisplayOrder))
	var unknown []T
	for _, item := range items {
		group := match.GroupStatus(status(item))
		if !isKnownGroup(group) {
			unknown = append(unknown, item)
			continue
		}
		buckets[group] = append(buckets[group], item)
	}

	out := make([]T, 0, len(items))
	for _, group := range match.DisplayOrder {
		out = append(out, buckets[group]...)
	}
	return append(out, unknown...)
}

func isKnownGroup(group string) bool {
	for _, known := range match.DisplayOrder {
		if group == known {
			return true
		}
	}
	return false
}
