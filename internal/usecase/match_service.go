package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

// CreateMatchInput carries base fields and optional nested events.
// CreatedAt and UpdatedAt are accepted for payload compatibility and ignored.
type CreateMatchInput struct {
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
	CreatedAt       *time.Time
	UpdatedAt       *time.Time

	Goals         []match.Goal
	Cards         []match.Card
	Substitutions []match.Substitution
	Lineups       []match.LineupEntry
}

type MatchService struct {
	repo   match.Repository
	logger *logging.Logger
}

func NewMatchService(repo match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		repo:   repo,
		logger: logger,
	}
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

// ListMatches lets the service act as an in-process live source.
func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	return s.List(ctx)
}

func (s *MatchService) Get(ctx context.Context, id int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", matchIDAttr(id))
	defer span.End()

	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	return item, nil
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = match.StatusNotStarted
	}

	item := match.Match{
		Status:          status,
		HomeTeam:        strings.TrimSpace(input.HomeTeam),
		AwayTeam:        strings.TrimSpace(input.AwayTeam),
		HomeScore:       input.HomeScore,
		AwayScore:       input.AwayScore,
		StartTime:       input.StartTime,
		FirstTime:       input.FirstTime,
		FirstAddedTime:  input.FirstAddedTime,
		SecondTime:      input.SecondTime,
		SecondAddedTime: input.SecondAddedTime,
		Competition:     strings.TrimSpace(input.Competition),
		Venue:           strings.TrimSpace(input.Venue),
		GameType:        strings.TrimSpace(input.GameType),
	}.WithEvents(match.Events{
		Goals:         input.Goals,
		Cards:         input.Cards,
		Substitutions: input.Substitutions,
		Lineups:       input.Lineups,
	})

	if err := validateMatch(item); err != nil {
		return match.Match{}, err
	}
	if err := item.Events().Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"goals", len(created.Goals),
		"cards", len(created.Cards),
		"substitutions", len(created.Substitutions),
		"lineups", len(created.Lineups),
	)

	return created, nil
}

// Update applies a partial update of base fields and refreshes UpdatedAt.
func (s *MatchService) Update(ctx context.Context, id int64, patch match.Patch) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update", matchIDAttr(id))
	defer span.End()

	if patch.Status != nil {
		trimmed := strings.TrimSpace(*patch.Status)
		if trimmed == "" {
			return match.Match{}, fmt.Errorf("%w: status cannot be empty", ErrInvalidInput)
		}
		patch.Status = &trimmed
	}
	if err := validatePatch(patch); err != nil {
		return match.Match{}, err
	}

	return s.update(ctx, id, patch)
}

// UpdateScore only touches the two score fields.
func (s *MatchService) UpdateScore(ctx context.Context, id int64, homeScore, awayScore *int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateScore", matchIDAttr(id))
	defer span.End()

	patch := match.Patch{HomeScore: homeScore, AwayScore: awayScore}
	if err := validatePatch(patch); err != nil {
		return match.Match{}, err
	}

	return s.update(ctx, id, patch)
}

// UpdateStatus stores status as given. Reachability from the current status
// is not checked, and the derived minute is not consulted.
func (s *MatchService) UpdateStatus(ctx context.Context, id int64, status string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateStatus", matchIDAttr(id))
	defer span.End()

	status = strings.TrimSpace(status)
	if status == "" {
		return match.Match{}, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}

	return s.update(ctx, id, match.Patch{Status: &status})
}

func (s *MatchService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete", matchIDAttr(id))
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", id)
	return nil
}

func (s *MatchService) update(ctx context.Context, id int64, patch match.Patch) (match.Match, error) {
	updated, exists, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	return updated, nil
}

func validateMatch(item match.Match) error {
	return validateNonNegative(map[string]int{
		"homeScore":       item.HomeScore,
		"awayScore":       item.AwayScore,
		"firstTime":       item.FirstTime,
		"firstAddedTime":  item.FirstAddedTime,
		"secondTime":      item.SecondTime,
		"secondAddedTime": item.SecondAddedTime,
	})
}

func validatePatch(patch match.Patch) error {
	values := make(map[string]int, 6)
	for name, ptr := range map[string]*int{
		"homeScore":       patch.HomeScore,
		"awayScore":       patch.AwayScore,
		"firstTime":       patch.FirstTime,
		"firstAddedTime":  patch.FirstAddedTime,
		"secondTime":      patch.SecondTime,
		"secondAddedTime": patch.SecondAddedTime,
	} {
		if ptr != nil {
			values[name] = *ptr
		}
	}
	return validateNonNegative(values)
}

func validateNonNegative(values map[string]int) error {
	for name, value := range values {
		if value < 0 {
			return fmt.Errorf("%w: %s must be >= 0", ErrInvalidInput, name)
		}
	}
	return nil
}
