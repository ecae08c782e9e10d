package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
	matchmock "github.com/riskibarqy/live-match/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
)

func TestMatchService_Get_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	repo := matchmock.NewRepository(t)
	service := NewMatchService(repo, nil)

	expected := match.Match{
		ID:        42,
		Status:    match.StatusOngoing,
		HomeTeam:  "Arema FC",
		AwayTeam:  "Bali United",
		StartTime: time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC),
	}
	repo.
		On("GetByID", mock.Anything, int64(42)).
		Return(expected, true, nil).
		Once()

	got, err := service.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.ID != expected.ID || got.HomeTeam != expected.HomeTeam {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestMatchService_UpdateStatus_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	service := NewMatchService(repo, nil)

	repo.
		On("Update", mock.Anything, int64(7), mock.MatchedBy(func(p match.Patch) bool {
			return p.Status != nil && *p.Status == match.StatusHalftime && p.HomeScore == nil
		})).
		Return(match.Match{}, false, nil).
		Once()

	_, err := service.UpdateStatus(context.Background(), 7, " HALFTIME ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_Create_RepositoryFailureUsingMockery(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	service := NewMatchService(repo, nil)

	storeErr := errors.New("connection reset")
	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(m match.Match) bool {
			return m.Status == match.StatusNotStarted && m.HomeTeam == "PSM Makassar"
		})).
		Return(match.Match{}, storeErr).
		Once()

	_, err := service.Create(context.Background(), CreateMatchInput{HomeTeam: " PSM Makassar ", AwayTeam: "Persebaya"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestEventService_Append_InvalidTypeSkipsRepositoryUsingMockery(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	service := NewEventService(repo, 1, nil)

	_, err := service.Append(context.Background(), 1, "penalty", EventData{PlayerID: 1})
	if !errors.Is(err, ErrInvalidEventType) {
		t.Fatalf("expected ErrInvalidEventType, got %v", err)
	}
	repo.AssertNotCalled(t, "InsertGoal", mock.Anything, mock.Anything)
}

func TestEventService_Append_ForeignKeyMissUsingMockery(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	service := NewEventService(repo, 1, nil)

	repo.
		On("InsertCard", mock.Anything, mock.MatchedBy(func(c match.Card) bool {
			return c.MatchID == 5 && c.Type == match.CardRed
		})).
		Return(match.Card{}, match.ErrMatchNotFound).
		Once()

	_, err := service.Append(context.Background(), 5, "card", EventData{PlayerID: 2, Type: "red", Minute: 80})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
