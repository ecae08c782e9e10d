package match

import "time"

// Match is the aggregate root for one fixture and its event log.
type Match struct {
	ID              int64
	Status          string
	HomeTeam        string
	AwayTeam        string
	HomeScore       int
	AwayScore       int
	StartTime       time.Time
	FirstTime       int
	FirstAddedTime  int
	SecondTime      int
	SecondAddedTime int
	Competition     string
	Venue           string
	GameType        string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Goals         []Goal
	Cards         []Card
	Substitutions []Substitution
	Lineups       []LineupEntry
}

// Clock extracts the inputs needed by DeriveMinute.
func (m Match) Clock() ClockInput {
	return ClockInput{
		StartTime:       m.StartTime,
		UpdatedAt:       m.UpdatedAt,
		FirstTime:       m.FirstTime,
		FirstAddedTime:  m.FirstAddedTime,
		SecondTime:      m.SecondTime,
		SecondAddedTime: m.SecondAddedTime,
	}
}

// Events returns the owned collections of the match.
func (m Match) Events() Events {
	return Events{
		Goals:         m.Goals,
		Cards:         m.Cards,
		Substitutions: m.Substitutions,
		Lineups:       m.Lineups,
	}
}

// WithEvents attaches collections, normalising nil slices to empty ones.
func (m Match) WithEvents(events Events) Match {
	events = events.Normalize()
	m.Goals = events.Goals
	m.Cards = events.Cards
	m.Substitutions = events.Substitutions
	m.Lineups = events.Lineups
	return m
}

// Patch is a partial update of base fields. Nil fields are left untouched.
type Patch struct {
	Status          *string
	HomeTeam        *string
	AwayTeam        *string
	HomeScore       *int
	AwayScore       *int
	StartTime       *time.Time
	FirstTime       *int
	FirstAddedTime  *int
	SecondTime      *int
	SecondAddedTime *int
	Competition     *string
	Venue           *string
	GameType        *string
}

// Apply copies every non-nil field of p onto m.
func (p Patch) Apply(m Match) Match {
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.HomeTeam != nil {
		m.HomeTeam = *p.HomeTeam
	}
	if p.AwayTeam != nil {
		m.AwayTeam = *p.AwayTeam
	}
	if p.HomeScore != nil {
		m.HomeScore = *p.HomeScore
	}
	if p.AwayScore != nil {
		m.AwayScore = *p.AwayScore
	}
	if p.StartTime != nil {
		m.StartTime = *p.StartTime
	}
	if p.FirstTime != nil {
		m.FirstTime = *p.FirstTime
	}
	if p.FirstAddedTime != nil {
		m.FirstAddedTime = *p.FirstAddedTime
	}
	if p.SecondTime != nil {
		m.SecondTime = *p.SecondTime
	}
	if p.SecondAddedTime != nil {
		m.SecondAddedTime = *p.SecondAddedTime
	}
	if p.Competition != nil {
		m.Competition = *p.Competition
	}
	if p.Venue != nil {
		m.Venue = *p.Venue
	}
	if p.GameType != nil {
		m.GameType = *p.GameType
	}
	return m
}

// NextUpdatedAt keeps UpdatedAt monotonically non-decreasing.
func NextUpdatedAt(previous, now time.Time) time.Time {
	if now.Before(previous) {
		return previous
	}
	return now
}
