package match

import (
	"math"
	"strconv"
	"time"
)

const regulationMinutes = 90

// ClockInput carries the stored timestamps and period lengths of a match.
type ClockInput struct {
	StartTime       time.Time
	UpdatedAt       time.Time
	FirstTime       int
	FirstAddedTime  int
	SecondTime      int
	SecondAddedTime int
}

func (c ClockInput) TotalFirstHalf() int {
	return c.FirstTime + c.FirstAddedTime
}

func (c ClockInput) TotalSecondHalf() int {
	return c.SecondTime + c.SecondAddedTime
}

func (c ClockInput) TotalAllowed() int {
	return c.TotalFirstHalf() + c.TotalSecondHalf()
}

// DeriveMinute computes the display minute at now. It never reads status.
//
// While less than the full first half has passed since StartTime the minute
// counts from StartTime. After that UpdatedAt is the origin of the second
// half, so an operator resuming play after the break restarts the clock at
// totalFirstHalf. The result is clamped to [0, TotalAllowed].
func DeriveMinute(in ClockInput, now time.Time) int {
	totalFirstHalf := in.TotalFirstHalf()
	totalAllowed := in.TotalAllowed()

	var elapsed int
	sinceStart := now.Sub(in.StartTime).Minutes()
	if sinceStart < float64(totalFirstHalf) {
		elapsed = floorMinutes(sinceStart)
	} else {
		elapsed = floorMinutes(now.Sub(in.UpdatedAt).Minutes()) + totalFirstHalf
	}

	if elapsed < 0 {
		return 0
	}
	if elapsed > totalAllowed {
		return totalAllowed
	}
	return elapsed
}

func floorMinutes(minutes float64) int {
	return int(math.Floor(minutes))
}

// FormatMinute renders a display minute, e.g. 45' or 90+3'.
func FormatMinute(minute int) string {
	if minute <= regulationMinutes {
		return strconv.Itoa(minute) + "'"
	}
	return "90+" + strconv.Itoa(minute-regulationMinutes) + "'"
}
