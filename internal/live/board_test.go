package live

import (
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
)

func TestGroupByStatus_FixedOrderStableWithinGroup(t *testing.T) {
	t.Parallel()

	items := []match.Match{
		{ID: 1, Status: match.StatusUpcoming},
		{ID: 2, Status: match.StatusEnded},
		{ID: 3, Status: match.StatusOngoing},
		{ID: 4, Status: "POSTPONED"},
		{ID: 5, Status: match.StatusNotStarted},
		{ID: 6, Status: match.StatusOngoing},
		{ID: 7, Status: match.StatusHalftime},
		{ID: 8, Status: match.StatusLegacyInProgress},
		{ID: 9, Status: ""},
	}

	got := GroupByStatus(items)
	want := []int64{3, 6, 8, 7, 2, 5, 1, 4, 9}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: got=%d want=%d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got id=%d want=%d", i, got[i].ID, id)
		}
	}
}

func TestGroupByStatus_Empty(t *testing.T) {
	t.Parallel()

	got := GroupByStatus(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestNewLiveMatch_DerivesDisplay(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 4, 4, 19, 0, 0, 0, time.UTC)
	item := match.Match{
		ID:              1,
		Status:          match.StatusOngoing,
		StartTime:       kickoff,
		UpdatedAt:       kickoff.Add(60 * time.Minute),
		FirstTime:       45,
		FirstAddedTime:  2,
		SecondTime:      45,
		SecondAddedTime: 5,
	}

	row := NewLiveMatch(item, kickoff.Add(60*time.Minute+46*time.Minute))
	if row.Minute != 93 {
		t.Fatalf("unexpected minute: got=%d want=93", row.Minute)
	}
	if row.Display != "90+3'" {
		t.Fatalf("unexpected display: got=%q want=%q", row.Display, "90+3'")
	}
}
