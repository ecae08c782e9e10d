package postgres

import (
	"time"

	"github.com/riskibarqy/live-match/internal/domain/match"
)

type matchTableModel struct {
	ID              int64     `db:"id"`
	Status          string    `db:"status"`
	HomeTeam        string    `db:"home_team"`
	AwayTeam        string    `db:"away_team"`
	HomeScore       int       `db:"home_score"`
	AwayScore       int       `db:"away_score"`
	StartTime       time.Time `db:"start_time"`
	FirstTime       int       `db:"first_time"`
	FirstAddedTime  int       `db:"first_added_time"`
	SecondTime      int       `db:"second_time"`
	SecondAddedTime int       `db:"second_added_time"`
	Competition     string    `db:"competition"`
	Venue           string    `db:"venue"`
	GameType        string    `db:"game_type"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	Status          string    `db:"status"`
	HomeTeam        string    `db:"home_team"`
	AwayTeam        string    `db:"away_team"`
	HomeScore       int       `db:"home_score"`
	AwayScore       int       `db:"away_score"`
	StartTime       time.Time `db:"start_time"`
	FirstTime       int       `db:"first_time"`
	FirstAddedTime  int       `db:"first_added_time"`
	SecondTime      int       `db:"second_time"`
	SecondAddedTime int       `db:"second_added_time"`
	Competition     string    `db:"competition"`
	Venue           string    `db:"venue"`
	GameType        string    `db:"game_type"`
}

type goalTableModel struct {
	ID        int64     `db:"id"`
	MatchID   int64     `db:"match_id"`
	PlayerID  int64     `db:"player_id"`
	Minute    int       `db:"minute"`
	CreatedAt time.Time `db:"created_at"`
}

type cardTableModel struct {
	ID        int64     `db:"id"`
	MatchID   int64     `db:"match_id"`
	PlayerID  int64     `db:"player_id"`
	CardType  string    `db:"card_type"`
	Minute    int       `db:"minute"`
	CreatedAt time.Time `db:"created_at"`
}

type substitutionTableModel struct {
	ID        int64     `db:"id"`
	MatchID   int64     `db:"match_id"`
	PlayerIn  int64     `db:"player_in"`
	PlayerOut int64     `db:"player_out"`
	Minute    int       `db:"minute"`
	CreatedAt time.Time `db:"created_at"`
}

type lineupTableModel struct {
	ID         int64     `db:"id"`
	MatchID    int64     `db:"match_id"`
	PlayerID   int64     `db:"player_id"`
	Position   string    `db:"position"`
	IsStarting bool      `db:"is_starting"`
	CreatedAt  time.Time `db:"created_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:              row.ID,
		Status:          row.Status,
		HomeTeam:        row.HomeTeam,
		AwayTeam:        row.AwayTeam,
		HomeScore:       row.HomeScore,
		AwayScore:       row.AwayScore,
		StartTime:       row.StartTime,
		FirstTime:       row.FirstTime,
		FirstAddedTime:  row.FirstAddedTime,
		SecondTime:      row.SecondTime,
		SecondAddedTime: row.SecondAddedTime,
		Competition:     row.Competition,
		Venue:           row.Venue,
		GameType:        row.GameType,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func matchInsertFromDomain(item match.Match) matchInsertModel {
	return matchInsertModel{
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
	}
}

func goalFromRow(row goalTableModel) match.Goal {
	return match.Goal{ID: row.ID, MatchID: row.MatchID, PlayerID: row.PlayerID, Minute: row.Minute, CreatedAt: row.CreatedAt}
}

func cardFromRow(row cardTableModel) match.Card {
	return match.Card{ID: row.ID, MatchID: row.MatchID, PlayerID: row.PlayerID, Type: match.CardType(row.CardType), Minute: row.Minute, CreatedAt: row.CreatedAt}
}

func substitutionFromRow(row substitutionTableModel) match.Substitution {
	return match.Substitution{ID: row.ID, MatchID: row.MatchID, PlayerIn: row.PlayerIn, PlayerOut: row.PlayerOut, Minute: row.Minute, CreatedAt: row.CreatedAt}
}

func lineupFromRow(row lineupTableModel) match.LineupEntry {
	return match.LineupEntry{ID: row.ID, MatchID: row.MatchID, PlayerID: row.PlayerID, Position: row.Position, IsStarting: row.IsStarting, CreatedAt: row.CreatedAt}
}
