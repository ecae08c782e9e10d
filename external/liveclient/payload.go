package liveclient

import (
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
)

type matchListEnvelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       []matchPayload `json:"data"`
	Error      *errorPayload  `json:"error"`
}

type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type matchPayload struct {
	ID              int64      `json:"id"`
	Status          string     `json:"status"`
	HomeTeam        string     `json:"homeTeam"`
	AwayTeam        string     `json:"awayTeam"`
	HomeScore       int        `json:"homeScore"`
	AwayScore       int        `json:"awayScore"`
	StartTime       time.Time  `json:"startTime"`
	FirstTime       int        `json:"firstTime"`
	FirstAddedTime  int        `json:"firstAddedTime"`
	SecondTime      int        `json:"secondTime"`
	SecondAddedTime int        `json:"secondAddedTime"`
	Competition     string     `json:"competition"`
	Venue           string     `json:"venue"`
	GameType        string     `json:"gameType"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Goals           []goalItem `json:"goals"`
	Cards           []cardItem `json:"cards"`
	Substitutions   []subItem  `json:"substitutions"`
	Lineups         []lineItem `json:"lineups"`
}

type goalItem struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerID  int64     `json:"playerId"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

type cardItem struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerID  int64     `json:"playerId"`
	Type      string    `json:"type"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

type subItem struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerIn  int64     `json:"playerIn"`
	PlayerOut int64     `json:"playerOut"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

type lineItem struct {
	ID         int64     `json:"id"`
	MatchID    int64     `json:"matchId"`
	PlayerID   int64     `json:"playerId"`
	Position   string    `json:"position"`
	IsStarting bool      `json:"isStarting"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (p matchPayload) toDomain() match.Match {
	events := match.Events{
		Goals:         make([]match.Goal, 0, len(p.Goals)),
		Cards:         make([]match.Card, 0, len(p.Cards)),
		Substitutions: make([]match.Substitution, 0, len(p.Substitutions)),
		Lineups:       make([]match.LineupEntry, 0, len(p.Lineups)),
	}
	for _, g := range p.Goals {
		events.Goals = append(events.Goals, match.Goal{ID: g.ID, MatchID: g.MatchID, PlayerID: g.PlayerID, Minute: g.Minute, CreatedAt: g.CreatedAt})
	}
	for _, c := range p.Cards {
		events.Cards = append(events.Cards, match.Card{ID: c.ID, MatchID: c.MatchID, PlayerID: c.PlayerID, Type: match.CardType(c.Type), Minute: c.Minute, CreatedAt: c.CreatedAt})
	}
	for _, s := range p.Substitutions {
		events.Substitutions = append(events.Substitutions, match.Substitution{ID: s.ID, MatchID: s.MatchID, PlayerIn: s.PlayerIn, PlayerOut: s.PlayerOut, Minute: s.Minute, CreatedAt: s.CreatedAt})
	}
	for _, l := range p.Lineups {
		events.Lineups = append(events.Lineups, match.LineupEntry{ID: l.ID, MatchID: l.MatchID, PlayerID: l.PlayerID, Position: l.Position, IsStarting: l.IsStarting, CreatedAt: l.CreatedAt})
	}

	return match.Match{
		ID:              p.ID,
		Status:          p.Status,
		HomeTeam:        p.HomeTeam,
		AwayTeam:        p.AwayTeam,
		HomeScore:       p.HomeScore,
		AwayScore:       p.AwayScore,
		StartTime:       p.StartTime,
		FirstTime:       p.FirstTime,
		FirstAddedTime:  p.FirstAddedTime,
		SecondTime:      p.SecondTime,
		SecondAddedTime: p.SecondAddedTime,
		Competition:     p.Competition,
		Venue:           p.Venue,
		GameType:        p.GameType,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}.WithEvents(events)
}
