package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/live-match/internal/domain/match"
)

type recordedQuery struct {
	query string
	args  []any
}

// recordingQueryer captures every statement and fails it with err.
type recordingQueryer struct {
	err     error
	queries []recordedQuery
}

func (q *recordingQueryer) record(query string, args []any) {
	q.queries = append(q.queries, recordedQuery{query: query, args: args})
}

func (q *recordingQueryer) QueryContext(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	q.record(query, args)
	return nil, q.err
}

func (q *recordingQueryer) QueryxContext(_ context.Context, query string, args ...any) (*sqlx.Rows, error) {
	q.record(query, args)
	return nil, q.err
}

func (q *recordingQueryer) QueryRowxContext(_ context.Context, query string, args ...any) *sqlx.Row {
	q.record(query, args)
	return nil
}

func TestInsertNestedEvents_SkipsEmptyCollectionsAndMapsForeignKey(t *testing.T) {
	q := &recordingQueryer{err: &pq.Error{Code: pqForeignKeyViolation}}

	_, err := insertNestedEvents(context.Background(), q, 7, match.Events{
		Cards: []match.Card{
			{PlayerID: 4, Type: match.CardYellow, Minute: 12},
			{PlayerID: 5, Type: match.CardRed, Minute: 80},
		},
	})
	if !errors.Is(err, match.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	if len(q.queries) != 1 {
		t.Fatalf("expected only the card insert to run, got %d statements", len(q.queries))
	}
	got := q.queries[0]
	want := "INSERT INTO match_cards (match_id, player_id, card_type, minute) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8) RETURNING *"
	if got.query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, got.query)
	}
	if len(got.args) != 8 || got.args[0] != int64(7) || got.args[2] != "YELLOW" || got.args[6] != "RED" {
		t.Fatalf("unexpected args: %+v", got.args)
	}
}

func TestInsertNestedEvents_MapsUniqueViolationToDuplicateLineup(t *testing.T) {
	q := &recordingQueryer{err: &pq.Error{Code: pqUniqueViolation, Constraint: "uq_match_lineups_match_player"}}

	_, err := insertNestedEvents(context.Background(), q, 3, match.Events{
		Lineups: []match.LineupEntry{{PlayerID: 9, Position: "GK", IsStarting: true}},
	})
	if !errors.Is(err, match.ErrDuplicateLineupEntry) {
		t.Fatalf("expected ErrDuplicateLineupEntry, got %v", err)
	}
	if len(q.queries) != 1 || !strings.HasPrefix(q.queries[0].query, "INSERT INTO match_lineups (match_id, player_id, position, is_starting)") {
		t.Fatalf("unexpected statements: %+v", q.queries)
	}
}

func TestInsertNestedEvents_NoEventsRunsNothing(t *testing.T) {
	q := &recordingQueryer{err: errors.New("must not be called")}

	out, err := insertNestedEvents(context.Background(), q, 1, match.Events{})
	if err != nil {
		t.Fatalf("insert empty events: %v", err)
	}
	if len(q.queries) != 0 {
		t.Fatalf("expected no statements, got %+v", q.queries)
	}
	if out.Goals == nil || out.Lineups == nil {
		t.Fatalf("expected normalized empty collections")
	}
}

func TestLoadEvents_BatchesMatchIDs(t *testing.T) {
	dbErr := errors.New("connection reset")
	q := &recordingQueryer{err: dbErr}
	repo := &MatchRepository{}

	_, err := repo.loadEvents(context.Background(), q, []int64{3, 5})
	if !errors.Is(err, dbErr) || !strings.Contains(err.Error(), "select match_goals") {
		t.Fatalf("expected wrapped goal select error, got %v", err)
	}

	if len(q.queries) != 1 {
		t.Fatalf("expected loading to stop at the first failure, got %d statements", len(q.queries))
	}
	want := "SELECT * FROM match_goals WHERE match_id IN ($1, $2) ORDER BY match_id, id"
	if q.queries[0].query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, q.queries[0].query)
	}
	if q.queries[0].args[0] != int64(3) || q.queries[0].args[1] != int64(5) {
		t.Fatalf("unexpected args: %+v", q.queries[0].args)
	}
}

func TestUpdateMatchQuery(t *testing.T) {
	home := 2
	status := "HALFTIME"

	query, args, err := updateMatchQuery(11, match.Patch{HomeScore: &home, Status: &status})
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}
	want := "UPDATE matches SET status = $1, home_score = $2, updated_at = GREATEST(updated_at, NOW()) WHERE id = $3 RETURNING *"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "HALFTIME" || args[1] != 2 || args[2] != int64(11) {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, args, err = updateMatchQuery(11, match.Patch{})
	if err != nil {
		t.Fatalf("build empty update query: %v", err)
	}
	if query != "UPDATE matches SET updated_at = GREATEST(updated_at, NOW()) WHERE id = $1 RETURNING *" || len(args) != 1 {
		t.Fatalf("empty patch must still refresh updated_at: %s %+v", query, args)
	}
}
