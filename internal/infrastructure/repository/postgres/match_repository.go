package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/live-match/internal/domain/match"
	qb "github.com/riskibarqy/live-match/internal/platform/querybuilder"
)

const (
	matchesTable       = "matches"
	goalsTable         = "match_goals"
	cardsTable         = "match_cards"
	substitutionsTable = "match_substitutions"
	lineupsTable       = "match_lineups"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From(matchesTable).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	if len(rows) == 0 {
		return []match.Match{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	eventsByMatch, err := r.loadEvents(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row).WithEvents(eventsByMatch[row.ID]))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	row, exists, err := r.getRow(ctx, r.db, id)
	if err != nil || !exists {
		return match.Match{}, exists, err
	}

	eventsByMatch, err := r.loadEvents(ctx, r.db, []int64{id})
	if err != nil {
		return match.Match{}, false, err
	}
	return matchFromRow(row).WithEvents(eventsByMatch[id]), true, nil
}

// Create inserts the match and its nested events in one transaction.
func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin create match tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := qb.InsertModel(matchesTable, matchInsertFromDomain(item), "RETURNING *")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var row matchTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	events, err := insertNestedEvents(ctx, tx, row.ID, item.Events())
	if err != nil {
		return match.Match{}, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit create match tx: %w", err)
	}

	return matchFromRow(row).WithEvents(events), nil
}

// Update writes the non-nil patch fields. updated_at never moves backwards.
func (r *MatchRepository) Update(ctx context.Context, id int64, patch match.Patch) (match.Match, bool, error) {
	query, args, err := updateMatchQuery(id, patch)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build update match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("update match: %w", err)
	}

	eventsByMatch, err := r.loadEvents(ctx, r.db, []int64{id})
	if err != nil {
		return match.Match{}, false, err
	}
	return matchFromRow(row).WithEvents(eventsByMatch[id]), true, nil
}

// Delete removes the match; event rows go with it through ON DELETE CASCADE.
func (r *MatchRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom(matchesTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted match rows: %w", err)
	}
	return affected > 0, nil
}

func (r *MatchRepository) ListEvents(ctx context.Context, matchID int64) (match.Events, bool, error) {
	_, exists, err := r.getRow(ctx, r.db, matchID)
	if err != nil || !exists {
		return match.Events{}, exists, err
	}

	eventsByMatch, err := r.loadEvents(ctx, r.db, []int64{matchID})
	if err != nil {
		return match.Events{}, false, err
	}
	return eventsByMatch[matchID].Normalize(), true, nil
}

func (r *MatchRepository) InsertGoal(ctx context.Context, item match.Goal) (match.Goal, error) {
	rows, err := insertGoals(ctx, r.db, item.MatchID, []match.Goal{item})
	if err != nil {
		return match.Goal{}, mapEventInsertError(item.MatchID, err)
	}
	return rows[0], nil
}

func (r *MatchRepository) InsertCard(ctx context.Context, item match.Card) (match.Card, error) {
	rows, err := insertCards(ctx, r.db, item.MatchID, []match.Card{item})
	if err != nil {
		return match.Card{}, mapEventInsertError(item.MatchID, err)
	}
	return rows[0], nil
}

func (r *MatchRepository) InsertSubstitution(ctx context.Context, item match.Substitution) (match.Substitution, error) {
	rows, err := insertSubstitutions(ctx, r.db, item.MatchID, []match.Substitution{item})
	if err != nil {
		return match.Substitution{}, mapEventInsertError(item.MatchID, err)
	}
	return rows[0], nil
}

func (r *MatchRepository) InsertLineupEntry(ctx context.Context, item match.LineupEntry) (match.LineupEntry, error) {
	rows, err := insertLineups(ctx, r.db, item.MatchID, []match.LineupEntry{item})
	if err != nil {
		return match.LineupEntry{}, mapEventInsertError(item.MatchID, err)
	}
	return rows[0], nil
}

func (r *MatchRepository) getRow(ctx context.Context, q sqlx.QueryerContext, id int64) (matchTableModel, bool, error) {
	query, args, err := qb.Select("*").From(matchesTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return matchTableModel{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchTableModel{}, false, nil
		}
		return matchTableModel{}, false, fmt.Errorf("get match: %w", err)
	}
	return row, true, nil
}

func (r *MatchRepository) loadEvents(ctx context.Context, q sqlx.QueryerContext, matchIDs []int64) (map[int64]match.Events, error) {
	byMatch := make(map[int64]match.Events, len(matchIDs))

	var goals []goalTableModel
	if err := selectByMatch(ctx, q, &goals, goalsTable, matchIDs); err != nil {
		return nil, err
	}
	for _, row := range goals {
		events := byMatch[row.MatchID]
		events.Goals = append(events.Goals, goalFromRow(row))
		byMatch[row.MatchID] = events
	}

	var cards []cardTableModel
	if err := selectByMatch(ctx, q, &cards, cardsTable, matchIDs); err != nil {
		return nil, err
	}
	for _, row := range cards {
		events := byMatch[row.MatchID]
		events.Cards = append(events.Cards, cardFromRow(row))
		byMatch[row.MatchID] = events
	}

	var subs []substitutionTableModel
	if err := selectByMatch(ctx, q, &subs, substitutionsTable, matchIDs); err != nil {
		return nil, err
	}
	for _, row := range subs {
		events := byMatch[row.MatchID]
		events.Substitutions = append(events.Substitutions, substitutionFromRow(row))
		byMatch[row.MatchID] = events
	}

	var lineups []lineupTableModel
	if err := selectByMatch(ctx, q, &lineups, lineupsTable, matchIDs); err != nil {
		return nil, err
	}
	for _, row := range lineups {
		events := byMatch[row.MatchID]
		events.Lineups = append(events.Lineups, lineupFromRow(row))
		byMatch[row.MatchID] = events
	}

	return byMatch, nil
}

func selectByMatch(ctx context.Context, q sqlx.QueryerContext, dest any, table string, matchIDs []int64) error {
	query, args, err := qb.Select("*").From(table).
		Where(qb.In("match_id", matchIDs)).
		OrderBy("match_id", "id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select %s query: %w", table, err)
	}
	if err := sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

func insertNestedEvents(ctx context.Context, q sqlx.QueryerContext, matchID int64, events match.Events) (match.Events, error) {
	var out match.Events
	var err error

	if out.Goals, err = insertGoals(ctx, q, matchID, events.Goals); err != nil {
		return match.Events{}, mapEventInsertError(matchID, err)
	}
	if out.Cards, err = insertCards(ctx, q, matchID, events.Cards); err != nil {
		return match.Events{}, mapEventInsertError(matchID, err)
	}
	if out.Substitutions, err = insertSubstitutions(ctx, q, matchID, events.Substitutions); err != nil {
		return match.Events{}, mapEventInsertError(matchID, err)
	}
	if out.Lineups, err = insertLineups(ctx, q, matchID, events.Lineups); err != nil {
		return match.Events{}, mapEventInsertError(matchID, err)
	}
	return out.Normalize(), nil
}

func insertGoals(ctx context.Context, q sqlx.QueryerContext, matchID int64, items []match.Goal) ([]match.Goal, error) {
	if len(items) == 0 {
		return []match.Goal{}, nil
	}

	builder := qb.InsertInto(goalsTable).Columns("match_id", "player_id", "minute")
	for _, item := range items {
		builder.Values(matchID, item.PlayerID, item.Minute)
	}
	var rows []goalTableModel
	if err := insertReturning(ctx, q, &rows, builder); err != nil {
		return nil, fmt.Errorf("insert goals: %w", err)
	}

	out := make([]match.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, goalFromRow(row))
	}
	return out, nil
}

func insertCards(ctx context.Context, q sqlx.QueryerContext, matchID int64, items []match.Card) ([]match.Card, error) {
	if len(items) == 0 {
		return []match.Card{}, nil
	}

	builder := qb.InsertInto(cardsTable).Columns("match_id", "player_id", "card_type", "minute")
	for _, item := range items {
		builder.Values(matchID, item.PlayerID, string(item.Type), item.Minute)
	}
	var rows []cardTableModel
	if err := insertReturning(ctx, q, &rows, builder); err != nil {
		return nil, fmt.Errorf("insert cards: %w", err)
	}

	out := make([]match.Card, 0, len(rows))
	for _, row := range rows {
		out = append(out, cardFromRow(row))
	}
	return out, nil
}

func insertSubstitutions(ctx context.Context, q sqlx.QueryerContext, matchID int64, items []match.Substitution) ([]match.Substitution, error) {
	if len(items) == 0 {
		return []match.Substitution{}, nil
	}

	builder := qb.InsertInto(substitutionsTable).Columns("match_id", "player_in", "player_out", "minute")
	for _, item := range items {
		builder.Values(matchID, item.PlayerIn, item.PlayerOut, item.Minute)
	}
	var rows []substitutionTableModel
	if err := insertReturning(ctx, q, &rows, builder); err != nil {
		return nil, fmt.Errorf("insert substitutions: %w", err)
	}

	out := make([]match.Substitution, 0, len(rows))
	for _, row := range rows {
		out = append(out, substitutionFromRow(row))
	}
	return out, nil
}

func insertLineups(ctx context.Context, q sqlx.QueryerContext, matchID int64, items []match.LineupEntry) ([]match.LineupEntry, error) {
	if len(items) == 0 {
		return []match.LineupEntry{}, nil
	}

	builder := qb.InsertInto(lineupsTable).Columns("match_id", "player_id", "position", "is_starting")
	for _, item := range items {
		builder.Values(matchID, item.PlayerID, item.Position, item.IsStarting)
	}
	var rows []lineupTableModel
	if err := insertReturning(ctx, q, &rows, builder); err != nil {
		return nil, fmt.Errorf("insert lineups: %w", err)
	}

	out := make([]match.LineupEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

func insertReturning(ctx context.Context, q sqlx.QueryerContext, dest any, builder *qb.InsertBuilder) error {
	query, args, err := builder.Suffix("RETURNING *").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

func mapEventInsertError(matchID int64, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: match=%d", match.ErrMatchNotFound, matchID)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: match=%d: %w", match.ErrDuplicateLineupEntry, matchID, err)
	default:
		return err
	}
}

// updateMatchQuery always refreshes updated_at, even for an empty patch.
func updateMatchQuery(id int64, patch match.Patch) (string, []any, error) {
	builder := qb.Update(matchesTable)
	for _, set := range patchSets(patch) {
		builder.Set(set.column, set.value)
	}
	return builder.
		SetExpr("updated_at", "GREATEST(updated_at, NOW())").
		Where(qb.Eq("id", id)).
		Suffix("RETURNING *").
		ToSQL()
}

type columnValue struct {
	column string
	value  any
}

func patchSets(patch match.Patch) []columnValue {
	sets := make([]columnValue, 0, 13)
	add := func(column string, value any, present bool) {
		if present {
			sets = append(sets, columnValue{column: column, value: value})
		}
	}

	add("status", deref(patch.Status), patch.Status != nil)
	add("home_team", deref(patch.HomeTeam), patch.HomeTeam != nil)
	add("away_team", deref(patch.AwayTeam), patch.AwayTeam != nil)
	add("home_score", deref(patch.HomeScore), patch.HomeScore != nil)
	add("away_score", deref(patch.AwayScore), patch.AwayScore != nil)
	add("start_time", deref(patch.StartTime), patch.StartTime != nil)
	add("first_time", deref(patch.FirstTime), patch.FirstTime != nil)
	add("first_added_time", deref(patch.FirstAddedTime), patch.FirstAddedTime != nil)
	add("second_time", deref(patch.SecondTime), patch.SecondTime != nil)
	add("second_added_time", deref(patch.SecondAddedTime), patch.SecondAddedTime != nil)
	add("competition", deref(patch.Competition), patch.Competition != nil)
	add("venue", deref(patch.Venue), patch.Venue != nil)
	add("game_type", deref(patch.GameType), patch.GameType != nil)

	return sets
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
