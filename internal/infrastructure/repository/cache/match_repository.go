package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
	basecache "github.com/riskibarqy/live-match/internal/platform/cache"
)

const (
	matchListKey    = "match:list"
	matchByIDPrefix = "match:id:"
)

// MatchRepository caches reads of the wrapped repository. Every write,
// event inserts included, drops all cached match entries.
type MatchRepository struct {
	next  match.Repository
	lists *basecache.Store[[]match.Match]
	items *basecache.Store[cachedMatchByID]
}

func NewMatchRepository(next match.Repository, ttl time.Duration) *MatchRepository {
	return &MatchRepository{
		next:  next,
		lists: basecache.NewStore[[]match.Match](ttl),
		items: basecache.NewStore[cachedMatchByID](ttl),
	}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	items, err := r.lists.GetOrLoad(ctx, matchListKey, func(ctx context.Context) ([]match.Match, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneMatches(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneMatches(items), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, matchByIDKey(id), func(ctx context.Context) (cachedMatchByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedMatchByID{}, err
		}
		return cachedMatchByID{value: cloneMatch(item), exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}
	return cloneMatch(cached.value), cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return match.Match{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *MatchRepository) Update(ctx context.Context, id int64, patch match.Patch) (match.Match, bool, error) {
	updated, exists, err := r.next.Update(ctx, id, patch)
	if err != nil {
		return match.Match{}, false, err
	}
	r.invalidate(ctx)
	return updated, exists, nil
}

func (r *MatchRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx)
	return deleted, nil
}

func (r *MatchRepository) ListEvents(ctx context.Context, matchID int64) (match.Events, bool, error) {
	item, exists, err := r.GetByID(ctx, matchID)
	if err != nil || !exists {
		return match.Events{}, exists, err
	}
	return item.Events(), true, nil
}

func (r *MatchRepository) InsertGoal(ctx context.Context, item match.Goal) (match.Goal, error) {
	created, err := r.next.InsertGoal(ctx, item)
	if err != nil {
		return match.Goal{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *MatchRepository) InsertCard(ctx context.Context, item match.Card) (match.Card, error) {
	created, err := r.next.InsertCard(ctx, item)
	if err != nil {
		return match.Card{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *MatchRepository) InsertSubstitution(ctx context.Context, item match.Substitution) (match.Substitution, error) {
	created, err := r.next.InsertSubstitution(ctx, item)
	if err != nil {
		return match.Substitution{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *MatchRepository) InsertLineupEntry(ctx context.Context, item match.LineupEntry) (match.LineupEntry, error) {
	created, err := r.next.InsertLineupEntry(ctx, item)
	if err != nil {
		return match.LineupEntry{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *MatchRepository) invalidate(ctx context.Context) {
	r.lists.Purge(ctx)
	r.items.Purge(ctx)
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

func matchByIDKey(id int64) string {
	return matchByIDPrefix + strconv.FormatInt(id, 10)
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, cloneMatch(item))
	}
	return out
}

func cloneMatch(item match.Match) match.Match {
	return item.WithEvents(match.Events{
		Goals:         append([]match.Goal{}, item.Goals...),
		Cards:         append([]match.Card{}, item.Cards...),
		Substitutions: append([]match.Substitution{}, item.Substitutions...),
		Lineups:       append([]match.LineupEntry{}, item.Lineups...),
	})
}
