package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

const defaultBatchWorkers = 4

// EventData is the loose union of every event variant's fields. Only the
// fields of the requested kind are read.
type EventData struct {
	PlayerID   int64
	Minute     int
	Type       string
	PlayerIn   int64
	PlayerOut  int64
	Position   string
	IsStarting bool
}

type EventInput struct {
	EventType string
	Data      EventData
}

// BatchResult reports the outcome of one item of AppendBatch.
type BatchResult struct {
	Index int
	Event match.Event
	Err   error
}

type EventService struct {
	repo         match.Repository
	logger       *logging.Logger
	batchWorkers int
}

func NewEventService(repo match.Repository, batchWorkers int, logger *logging.Logger) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	if batchWorkers < 1 {
		batchWorkers = defaultBatchWorkers
	}

	return &EventService{
		repo:         repo,
		logger:       logger,
		batchWorkers: batchWorkers,
	}
}

// Append inserts one immutable event for matchID. The match itself is not
// modified: score, status and UpdatedAt stay as they are.
func (s *EventService) Append(ctx context.Context, matchID int64, eventType string, data EventData) (match.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Append", matchIDAttr(matchID))
	defer span.End()

	kind, err := match.ParseEventKind(eventType)
	if err != nil {
		return match.Event{}, err
	}

	event, err := s.insert(ctx, matchID, kind, data)
	if err != nil {
		return match.Event{}, err
	}

	s.logger.DebugContext(ctx, "match event appended",
		"match_id", matchID,
		"event_type", string(kind),
		"event_id", event.ID(),
	)
	return event, nil
}

// AppendBatch appends every input concurrently. Items succeed or fail on
// their own; results keep the input order. The returned error is only set
// when the batch could not be scheduled at all.
func (s *EventService) AppendBatch(ctx context.Context, matchID int64, inputs []EventInput) ([]BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.AppendBatch", matchIDAttr(matchID))
	defer span.End()

	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	workerCount := s.batchWorkers
	if workerCount > len(inputs) {
		workerCount = len(inputs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, input := range inputs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			event, appendErr := s.Append(ctx, matchID, input.EventType, input.Data)
			results[i] = BatchResult{Index: i, Event: event, Err: appendErr}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit event to worker pool: %w", err)
		}
	}
	workers.Wait()

	failed := 0
	for _, row := range results {
		if row.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "match event batch appended",
		"match_id", matchID,
		"total", len(inputs),
		"failed", failed,
	)

	return results, nil
}

// ListEvents returns the four event collections of one match.
func (s *EventService) ListEvents(ctx context.Context, matchID int64) (match.Events, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListEvents", matchIDAttr(matchID))
	defer span.End()

	events, exists, err := s.repo.ListEvents(ctx, matchID)
	if err != nil {
		return match.Events{}, fmt.Errorf("list match events: %w", err)
	}
	if !exists {
		return match.Events{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	return events.Normalize(), nil
}

func (s *EventService) insert(ctx context.Context, matchID int64, kind match.EventKind, data EventData) (match.Event, error) {
	switch kind {
	case match.KindGoal:
		item := match.Goal{MatchID: matchID, PlayerID: data.PlayerID, Minute: data.Minute}
		if err := item.Validate(); err != nil {
			return match.Event{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		created, err := s.repo.InsertGoal(ctx, item)
		if err != nil {
			return match.Event{}, mapInsertError(matchID, "goal", err)
		}
		return match.Event{Kind: kind, Goal: &created}, nil

	case match.KindCard:
		item := match.Card{MatchID: matchID, PlayerID: data.PlayerID, Type: match.CardType(data.Type), Minute: data.Minute}
		if cardType, err := match.ParseCardType(data.Type); err == nil {
			item.Type = cardType
		}
		if err := item.Validate(); err != nil {
			return match.Event{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		created, err := s.repo.InsertCard(ctx, item)
		if err != nil {
			return match.Event{}, mapInsertError(matchID, "card", err)
		}
		return match.Event{Kind: kind, Card: &created}, nil

	case match.KindSubstitution:
		item := match.Substitution{MatchID: matchID, PlayerIn: data.PlayerIn, PlayerOut: data.PlayerOut, Minute: data.Minute}
		if err := item.Validate(); err != nil {
			return match.Event{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		created, err := s.repo.InsertSubstitution(ctx, item)
		if err != nil {
			return match.Event{}, mapInsertError(matchID, "substitution", err)
		}
		return match.Event{Kind: kind, Substitution: &created}, nil

	case match.KindLineup:
		item := match.LineupEntry{MatchID: matchID, PlayerID: data.PlayerID, Position: data.Position, IsStarting: data.IsStarting}
		created, err := s.repo.InsertLineupEntry(ctx, item)
		if err != nil {
			return match.Event{}, mapInsertError(matchID, "lineup entry", err)
		}
		return match.Event{Kind: kind, Lineup: &created}, nil
	}

	return match.Event{}, fmt.Errorf("%w: %q", ErrInvalidEventType, kind)
}

func mapInsertError(matchID int64, what string, err error) error {
	switch {
	case errors.Is(err, match.ErrMatchNotFound):
		return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	case errors.Is(err, match.ErrDuplicateLineupEntry):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("insert %s: %w", what, err)
	}
}
