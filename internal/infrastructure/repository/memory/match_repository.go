package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	now     func() time.Time
	nextID  int64
	eventID int64
	matches map[int64]match.Match
	events  map[int64]*match.Events
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		now:     time.Now,
		matches: make(map[int64]match.Match),
		events:  make(map[int64]*match.Events),
	}
}

// WithClock replaces the clock used to stamp CreatedAt and UpdatedAt.
func (r *MatchRepository) WithClock(now func() time.Time) *MatchRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now != nil {
		r.now = now
	}
	return r
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.matches))
	for id := range r.matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.withEventsLocked(r.matches[id]))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[id]
	if !ok {
		return match.Match{}, false, nil
	}
	return r.withEventsLocked(item), true, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	if err := item.Events().Validate(); err != nil {
		return match.Match{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = now
	item.UpdatedAt = now

	events := &match.Events{}
	for _, goal := range item.Goals {
		goal.ID, goal.MatchID, goal.CreatedAt = r.nextEventIDLocked(), item.ID, now
		events.Goals = append(events.Goals, goal)
	}
	for _, card := range item.Cards {
		card.ID, card.MatchID, card.CreatedAt = r.nextEventIDLocked(), item.ID, now
		events.Cards = append(events.Cards, card)
	}
	for _, sub := range item.Substitutions {
		sub.ID, sub.MatchID, sub.CreatedAt = r.nextEventIDLocked(), item.ID, now
		events.Substitutions = append(events.Substitutions, sub)
	}
	for _, entry := range item.Lineups {
		entry.ID, entry.MatchID, entry.CreatedAt = r.nextEventIDLocked(), item.ID, now
		events.Lineups = append(events.Lineups, entry)
	}

	item = item.WithEvents(match.Events{})
	r.matches[item.ID] = item
	r.events[item.ID] = events

	return r.withEventsLocked(item), nil
}

func (r *MatchRepository) Update(_ context.Context, id int64, patch match.Patch) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[id]
	if !ok {
		return match.Match{}, false, nil
	}

	item = patch.Apply(item)
	item.UpdatedAt = match.NextUpdatedAt(item.UpdatedAt, r.now())
	r.matches[id] = item

	return r.withEventsLocked(item), true, nil
}

func (r *MatchRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matches[id]; !ok {
		return false, nil
	}
	delete(r.matches, id)
	delete(r.events, id)
	return true, nil
}

func (r *MatchRepository) ListEvents(_ context.Context, matchID int64) (match.Events, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.matches[matchID]; !ok {
		return match.Events{}, false, nil
	}
	return r.copyEventsLocked(matchID), true, nil
}

func (r *MatchRepository) InsertGoal(_ context.Context, item match.Goal) (match.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.eventsForInsertLocked(item.MatchID)
	if err != nil {
		return match.Goal{}, err
	}
	item.ID, item.CreatedAt = r.nextEventIDLocked(), r.now()
	events.Goals = append(events.Goals, item)
	return item, nil
}

func (r *MatchRepository) InsertCard(_ context.Context, item match.Card) (match.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.eventsForInsertLocked(item.MatchID)
	if err != nil {
		return match.Card{}, err
	}
	item.ID, item.CreatedAt = r.nextEventIDLocked(), r.now()
	events.Cards = append(events.Cards, item)
	return item, nil
}

func (r *MatchRepository) InsertSubstitution(_ context.Context, item match.Substitution) (match.Substitution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.eventsForInsertLocked(item.MatchID)
	if err != nil {
		return match.Substitution{}, err
	}
	item.ID, item.CreatedAt = r.nextEventIDLocked(), r.now()
	events.Substitutions = append(events.Substitutions, item)
	return item, nil
}

func (r *MatchRepository) InsertLineupEntry(_ context.Context, item match.LineupEntry) (match.LineupEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.eventsForInsertLocked(item.MatchID)
	if err != nil {
		return match.LineupEntry{}, err
	}
	for _, existing := range events.Lineups {
		if existing.PlayerID == item.PlayerID {
			return match.LineupEntry{}, fmt.Errorf("%w: match=%d player=%d", match.ErrDuplicateLineupEntry, item.MatchID, item.PlayerID)
		}
	}
	item.ID, item.CreatedAt = r.nextEventIDLocked(), r.now()
	events.Lineups = append(events.Lineups, item)
	return item, nil
}

func (r *MatchRepository) eventsForInsertLocked(matchID int64) (*match.Events, error) {
	if _, ok := r.matches[matchID]; !ok {
		return nil, fmt.Errorf("%w: match=%d", match.ErrMatchNotFound, matchID)
	}
	events := r.events[matchID]
	if events == nil {
		events = &match.Events{}
		r.events[matchID] = events
	}
	return events, nil
}

func (r *MatchRepository) nextEventIDLocked() int64 {
	r.eventID++
	return r.eventID
}

func (r *MatchRepository) withEventsLocked(item match.Match) match.Match {
	return item.WithEvents(r.copyEventsLocked(item.ID))
}

func (r *MatchRepository) copyEventsLocked(matchID int64) match.Events {
	events := r.events[matchID]
	if events == nil {
		return match.Events{}.Normalize()
	}
	return match.Events{
		Goals:         append([]match.Goal{}, events.Goals...),
		Cards:         append([]match.Card{}, events.Cards...),
		Substitutions: append([]match.Substitution{}, events.Substitutions...),
		Lineups:       append([]match.LineupEntry{}, events.Lineups...),
	}
}
