package match

import (
	"context"
	"errors"
)

// ErrMatchNotFound is returned by inserts whose parent match does not exist.
var ErrMatchNotFound = errors.New("match not found")

// Repository persists matches and their owned event collections.
// Lookups report absence with a false flag rather than an error.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	// Create inserts the match and every non-empty event collection atomically.
	Create(ctx context.Context, item Match) (Match, error)
	Update(ctx context.Context, id int64, patch Patch) (Match, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	ListEvents(ctx context.Context, matchID int64) (Events, bool, error)
	InsertGoal(ctx context.Context, item Goal) (Goal, error)
	InsertCard(ctx context.Context, item Card) (Card, error)
	InsertSubstitution(ctx context.Context, item Substitution) (Substitution, error)
	InsertLineupEntry(ctx context.Context, item LineupEntry) (LineupEntry, error)
}
