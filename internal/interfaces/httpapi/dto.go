package httpapi

import (
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/live"
	"github.com/riskibarqy/live-match/internal/usecase"
)

type goalDTO struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerID  int64     `json:"playerId"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

type cardDTO struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerID  int64     `json:"playerId"`
	Type      string    `json:"type"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

type substitutionDTO struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerIn  int64     `json:"playerIn"`
	PlayerOut int64     `json:"playerOut"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

type lineupEntryDTO struct {
	ID         int64     `json:"id"`
	MatchID    int64     `json:"matchId"`
	PlayerID   int64     `json:"playerId"`
	Position   string    `json:"position"`
	IsStarting bool      `json:"isStarting"`
	CreatedAt  time.Time `json:"createdAt"`
}

type matchDTO struct {
	ID              int64             `json:"id"`
	Status          string            `json:"status"`
	HomeTeam        string            `json:"homeTeam"`
	AwayTeam        string            `json:"awayTeam"`
	HomeScore       int               `json:"homeScore"`
	AwayScore       int               `json:"awayScore"`
	StartTime       time.Time         `json:"startTime"`
	FirstTime       int               `json:"firstTime"`
	FirstAddedTime  int               `json:"firstAddedTime"`
	SecondTime      int               `json:"secondTime"`
	SecondAddedTime int               `json:"secondAddedTime"`
	Competition     string            `json:"competition"`
	Venue           string            `json:"venue"`
	GameType        string            `json:"gameType"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	Goals           []goalDTO         `json:"goals"`
	Cards           []cardDTO         `json:"cards"`
	Substitutions   []substitutionDTO `json:"substitutions"`
	Lineups         []lineupEntryDTO  `json:"lineups"`
}

type eventsDTO struct {
	Goals         []goalDTO         `json:"goals"`
	Cards         []cardDTO         `json:"cards"`
	Substitutions []substitutionDTO `json:"substitutions"`
	Lineups       []lineupEntryDTO  `json:"lineups"`
}

type eventDTO struct {
	EventType string `json:"eventType"`
	Event     any    `json:"event"`
}

type batchResultDTO struct {
	Index int       `json:"index"`
	Event *eventDTO `json:"event,omitempty"`
	Error string    `json:"error,omitempty"`
}

type liveMatchDTO struct {
	matchDTO
	Minute        int    `json:"minute"`
	DisplayMinute string `json:"displayMinute"`
}

type liveBoardDTO struct {
	ComputedAt time.Time      `json:"computedAt"`
	Matches    []liveMatchDTO `json:"matches"`
}

// Requests.

type goalRequest struct {
	PlayerID int64 `json:"playerId"`
	Minute   int   `json:"minute" validate:"min=0"`
}

type cardRequest struct {
	PlayerID int64  `json:"playerId"`
	Type     string `json:"type" validate:"required"`
	Minute   int    `json:"minute" validate:"min=0"`
}

type substitutionRequest struct {
	PlayerIn  int64 `json:"playerIn"`
	PlayerOut int64 `json:"playerOut" validate:"nefield=PlayerIn"`
	Minute    int   `json:"minute" validate:"min=0"`
}

type lineupEntryRequest struct {
	PlayerID   int64  `json:"playerId"`
	Position   string `json:"position" validate:"max=32"`
	IsStarting bool   `json:"isStarting"`
}

type createMatchRequest struct {
	Status          string                `json:"status" validate:"max=64"`
	HomeTeam        string                `json:"homeTeam" validate:"max=128"`
	AwayTeam        string                `json:"awayTeam" validate:"max=128"`
	HomeScore       int                   `json:"homeScore" validate:"min=0"`
	AwayScore       int                   `json:"awayScore" validate:"min=0"`
	StartTime       time.Time             `json:"startTime"`
	FirstTime       int                   `json:"firstTime" validate:"min=0"`
	FirstAddedTime  int                   `json:"firstAddedTime" validate:"min=0"`
	SecondTime      int                   `json:"secondTime" validate:"min=0"`
	SecondAddedTime int                   `json:"secondAddedTime" validate:"min=0"`
	Competition     string                `json:"competition" validate:"max=128"`
	Venue           string                `json:"venue" validate:"max=128"`
	GameType        string                `json:"gameType" validate:"max=64"`
	CreatedAt       *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time            `json:"updatedAt,omitempty"`
	Goals           []goalRequest         `json:"goals" validate:"dive"`
	Cards           []cardRequest         `json:"cards" validate:"dive"`
	Substitutions   []substitutionRequest `json:"substitutions" validate:"dive"`
	Lineups         []lineupEntryRequest  `json:"lineups" validate:"dive"`
}

type updateMatchRequest struct {
	Status          *string    `json:"status" validate:"omitempty,max=64"`
	HomeTeam        *string    `json:"homeTeam" validate:"omitempty,max=128"`
	AwayTeam        *string    `json:"awayTeam" validate:"omitempty,max=128"`
	HomeScore       *int       `json:"homeScore" validate:"omitempty,min=0"`
	AwayScore       *int       `json:"awayScore" validate:"omitempty,min=0"`
	StartTime       *time.Time `json:"startTime"`
	FirstTime       *int       `json:"firstTime" validate:"omitempty,min=0"`
	FirstAddedTime  *int       `json:"firstAddedTime" validate:"omitempty,min=0"`
	SecondTime      *int       `json:"secondTime" validate:"omitempty,min=0"`
	SecondAddedTime *int       `json:"secondAddedTime" validate:"omitempty,min=0"`
	Competition     *string    `json:"competition" validate:"omitempty,max=128"`
	Venue           *string    `json:"venue" validate:"omitempty,max=128"`
	GameType        *string    `json:"gameType" validate:"omitempty,max=64"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type updateScoreRequest struct {
	HomeScore *int `json:"homeScore" validate:"omitempty,min=0"`
	AwayScore *int `json:"awayScore" validate:"omitempty,min=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,max=64"`
}

type eventDataRequest struct {
	PlayerID   int64  `json:"playerId"`
	Minute     int    `json:"minute"`
	Type       string `json:"type"`
	PlayerIn   int64  `json:"playerIn"`
	PlayerOut  int64  `json:"playerOut"`
	Position   string `json:"position"`
	IsStarting bool   `json:"isStarting"`
}

type appendEventRequest struct {
	EventType string           `json:"eventType"`
	EventData eventDataRequest `json:"eventData"`
}

type appendEventBatchRequest struct {
	Events []appendEventRequest `json:"events" validate:"required,min=1,max=200,dive"`
}

func (r createMatchRequest) toInput() usecase.CreateMatchInput {
	input := usecase.CreateMatchInput{
		Status:          r.Status,
		HomeTeam:        r.HomeTeam,
		AwayTeam:        r.AwayTeam,
		HomeScore:       r.HomeScore,
		AwayScore:       r.AwayScore,
		StartTime:       r.StartTime,
		FirstTime:       r.FirstTime,
		FirstAddedTime:  r.FirstAddedTime,
		SecondTime:      r.SecondTime,
		SecondAddedTime: r.SecondAddedTime,
		Competition:     r.Competition,
		Venue:           r.Venue,
		GameType:        r.GameType,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Goals:           make([]match.Goal, 0, len(r.Goals)),
		Cards:           make([]match.Card, 0, len(r.Cards)),
		Substitutions:   make([]match.Substitution, 0, len(r.Substitutions)),
		Lineups:         make([]match.LineupEntry, 0, len(r.Lineups)),
	}
	for _, g := range r.Goals {
		input.Goals = append(input.Goals, match.Goal{PlayerID: g.PlayerID, Minute: g.Minute})
	}
	for _, c := range r.Cards {
		cardType := match.CardType(c.Type)
		if parsed, err := match.ParseCardType(c.Type); err == nil {
			cardType = parsed
		}
		input.Cards = append(input.Cards, match.Card{PlayerID: c.PlayerID, Type: cardType, Minute: c.Minute})
	}
	for _, s := range r.Substitutions {
		input.Substitutions = append(input.Substitutions, match.Substitution{PlayerIn: s.PlayerIn, PlayerOut: s.PlayerOut, Minute: s.Minute})
	}
	for _, l := range r.Lineups {
		input.Lineups = append(input.Lineups, match.LineupEntry{PlayerID: l.PlayerID, Position: l.Position, IsStarting: l.IsStarting})
	}
	return input
}

func (r updateMatchRequest) toPatch() match.Patch {
	return match.Patch{
		Status:          r.Status,
		HomeTeam:        r.HomeTeam,
		AwayTeam:        r.AwayTeam,
		HomeScore:       r.HomeScore,
		AwayScore:       r.AwayScore,
		StartTime:       r.StartTime,
		FirstTime:       r.FirstTime,
		FirstAddedTime:  r.FirstAddedTime,
		SecondTime:      r.SecondTime,
		SecondAddedTime: r.SecondAddedTime,
		Competition:     r.Competition,
		Venue:           r.Venue,
		GameType:        r.GameType,
	}
}

func (r appendEventRequest) toInput() usecase.EventInput {
	return usecase.EventInput{
		EventType: r.EventType,
		Data: usecase.EventData{
			PlayerID:   r.EventData.PlayerID,
			Minute:     r.EventData.Minute,
			Type:       r.EventData.Type,
			PlayerIn:   r.EventData.PlayerIn,
			PlayerOut:  r.EventData.PlayerOut,
			Position:   r.EventData.Position,
			IsStarting: r.EventData.IsStarting,
		},
	}
}

func matchToDTO(item match.Match) matchDTO {
	events := eventsToDTO(item.Events())
	return matchDTO{
		ID:              item.ID,
		Status:          item.Status,
		HomeTeam:        item.HomeTeam,
		AwayTeam:        item.AwayTeam,
		HomeScore:       item.HomeScore,
		AwayScore:       item.AwayScore,
		StartTime:       item.StartTime,
		FirstTime:       item.FirstTime,
		FirstAddedTime:  item.FirstAddedTime,
		SecondTime:      item.SecondTime,
		SecondAddedTime: item.SecondAddedTime,
		Competition:     item.Competition,
		Venue:           item.Venue,
		GameType:        item.GameType,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
		Goals:           events.Goals,
		Cards:           events.Cards,
		Substitutions:   events.Substitutions,
		Lineups:         events.Lineups,
	}
}

func eventsToDTO(events match.Events) eventsDTO {
	out := eventsDTO{
		Goals:         make([]goalDTO, 0, len(events.Goals)),
		Cards:         make([]cardDTO, 0, len(events.Cards)),
		Substitutions: make([]substitutionDTO, 0, len(events.Substitutions)),
		Lineups:       make([]lineupEntryDTO, 0, len(events.Lineups)),
	}
	for _, g := range events.Goals {
		out.Goals = append(out.Goals, goalToDTO(g))
	}
	for _, c := range events.Cards {
		out.Cards = append(out.Cards, cardToDTO(c))
	}
	for _, s := range events.Substitutions {
		out.Substitutions = append(out.Substitutions, substitutionToDTO(s))
	}
	for _, l := range events.Lineups {
		out.Lineups = append(out.Lineups, lineupEntryToDTO(l))
	}
	return out
}

func goalToDTO(g match.Goal) goalDTO {
	return goalDTO{ID: g.ID, MatchID: g.MatchID, PlayerID: g.PlayerID, Minute: g.Minute, CreatedAt: g.CreatedAt}
}

func cardToDTO(c match.Card) cardDTO {
	return cardDTO{ID: c.ID, MatchID: c.MatchID, PlayerID: c.PlayerID, Type: string(c.Type), Minute: c.Minute, CreatedAt: c.CreatedAt}
}

func substitutionToDTO(s match.Substitution) substitutionDTO {
	return substitutionDTO{ID: s.ID, MatchID: s.MatchID, PlayerIn: s.PlayerIn, PlayerOut: s.PlayerOut, Minute: s.Minute, CreatedAt: s.CreatedAt}
}

func lineupEntryToDTO(l match.LineupEntry) lineupEntryDTO {
	return lineupEntryDTO{ID: l.ID, MatchID: l.MatchID, PlayerID: l.PlayerID, Position: l.Position, IsStarting: l.IsStarting, CreatedAt: l.CreatedAt}
}

func eventToDTO(event match.Event) eventDTO {
	out := eventDTO{EventType: string(event.Kind)}
	switch {
	case event.Goal != nil:
		out.Event = goalToDTO(*event.Goal)
	case event.Card != nil:
		out.Event = cardToDTO(*event.Card)
	case event.Substitution != nil:
		out.Event = substitutionToDTO(*event.Substitution)
	case event.Lineup != nil:
		out.Event = lineupEntryToDTO(*event.Lineup)
	}
	return out
}

func liveMatchToDTO(row live.LiveMatch) liveMatchDTO {
	return liveMatchDTO{
		matchDTO:      matchToDTO(row.Match),
		Minute:        row.Minute,
		DisplayMinute: row.Display,
	}
}
