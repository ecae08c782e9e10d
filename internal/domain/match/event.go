package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEventType      = errors.New("invalid event type")
	ErrInvalidEvent          = errors.New("invalid event")
	ErrDuplicateLineupEntry  = errors.New("duplicate lineup entry")
	ErrNegativeMinute        = fmt.Errorf("%w: minute must be >= 0", ErrInvalidEvent)
	ErrSamePlayerSubstituted = fmt.Errorf("%w: playerIn must differ from playerOut", ErrInvalidEvent)
)

// EventKind is the closed set of event tags accepted by the log.
type EventKind string

const (
	KindGoal         EventKind = "goal"
	KindCard         EventKind = "card"
	KindSubstitution EventKind = "substitution"
	KindLineup       EventKind = "lineup"
)

// ParseEventKind matches value exactly against the known tags.
func ParseEventKind(value string) (EventKind, error) {
	switch kind := EventKind(value); kind {
	case KindGoal, KindCard, KindSubstitution, KindLineup:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEventType, value)
	}
}

type CardType string

const (
	CardYellow CardType = "YELLOW"
	CardRed    CardType = "RED"
)

func ParseCardType(value string) (CardType, error) {
	switch card := CardType(strings.ToUpper(strings.TrimSpace(value))); card {
	case CardYellow, CardRed:
		return card, nil
	default:
		return "", fmt.Errorf("%w: unknown card type %q", ErrInvalidEvent, value)
	}
}

type Goal struct {
	ID        int64
	MatchID   int64
	PlayerID  int64
	Minute    int
	CreatedAt time.Time
}

func (g Goal) Validate() error {
	if g.Minute < 0 {
		return ErrNegativeMinute
	}
	return nil
}

type Card struct {
	ID        int64
	MatchID   int64
	PlayerID  int64
	Type      CardType
	Minute    int
	CreatedAt time.Time
}

func (c Card) Validate() error {
	if c.Minute < 0 {
		return ErrNegativeMinute
	}
	if _, err := ParseCardType(string(c.Type)); err != nil {
		return err
	}
	return nil
}

type Substitution struct {
	ID        int64
	MatchID   int64
	PlayerIn  int64
	PlayerOut int64
	Minute    int
	CreatedAt time.Time
}

func (s Substitution) Validate() error {
	if s.Minute < 0 {
		return ErrNegativeMinute
	}
	if s.PlayerIn == s.PlayerOut {
		return ErrSamePlayerSubstituted
	}
	return nil
}

type LineupEntry struct {
	ID         int64
	MatchID    int64
	PlayerID   int64
	Position   string
	IsStarting bool
	CreatedAt  time.Time
}

func (l LineupEntry) Validate() error {
	return nil
}

// Event is one appended record. Exactly one variant pointer is set, matching Kind.
type Event struct {
	Kind         EventKind
	Goal         *Goal
	Card         *Card
	Substitution *Substitution
	Lineup       *LineupEntry
}

// ID returns the generated id of whichever variant is set.
func (e Event) ID() int64 {
	switch e.Kind {
	case KindGoal:
		if e.Goal != nil {
			return e.Goal.ID
		}
	case KindCard:
		if e.Card != nil {
			return e.Card.ID
		}
	case KindSubstitution:
		if e.Substitution != nil {
			return e.Substitution.ID
		}
	case KindLineup:
		if e.Lineup != nil {
			return e.Lineup.ID
		}
	}
	return 0
}

// Events groups the four owned collections of a match.
type Events struct {
	Goals         []Goal
	Cards         []Card
	Substitutions []Substitution
	Lineups       []LineupEntry
}

func (e Events) Normalize() Events {
	if e.Goals == nil {
		e.Goals = []Goal{}
	}
	if e.Cards == nil {
		e.Cards = []Card{}
	}
	if e.Substitutions == nil {
		e.Substitutions = []Substitution{}
	}
	if e.Lineups == nil {
		e.Lineups = []LineupEntry{}
	}
	return e
}

func (e Events) Len() int {
	return len(e.Goals) + len(e.Cards) + len(e.Substitutions) + len(e.Lineups)
}

// Validate checks every record and rejects repeated lineup players.
func (e Events) Validate() error {
	for i, item := range e.Goals {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("goals[%d]: %w", i, err)
		}
	}
	for i, item := range e.Cards {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("cards[%d]: %w", i, err)
		}
	}
	for i, item := range e.Substitutions {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("substitutions[%d]: %w", i, err)
		}
	}
	seen := make(map[int64]struct{}, len(e.Lineups))
	for i, item := range e.Lineups {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("lineups[%d]: %w", i, err)
		}
		if _, ok := seen[item.PlayerID]; ok {
			return fmt.Errorf("lineups[%d]: %w: player=%d", i, ErrDuplicateLineupEntry, item.PlayerID)
		}
		seen[item.PlayerID] = struct{}{}
	}
	return nil
}
