package match

import (
	"errors"
	"testing"
)

func TestParseEventKind(t *testing.T) {
	for _, raw := range []string{"goal", "card", "substitution", "lineup"} {
		if _, err := ParseEventKind(raw); err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
	}

	for _, raw := range []string{"", "bogus", "goals", "penalty", "GOAL", "Card", " goal "} {
		if _, err := ParseEventKind(raw); !errors.Is(err, ErrInvalidEventType) {
			t.Fatalf("expected ErrInvalidEventType for %q, got %v", raw, err)
		}
	}
}

func TestEventValidation(t *testing.T) {
	if err := (Goal{Minute: -1}).Validate(); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for negative goal minute, got %v", err)
	}
	if err := (Card{Type: "GREEN", Minute: 10}).Validate(); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for unknown card type, got %v", err)
	}
	if err := (Card{Type: CardRed, Minute: 10}).Validate(); err != nil {
		t.Fatalf("unexpected card error: %v", err)
	}
	if err := (Substitution{PlayerIn: 4, PlayerOut: 4, Minute: 60}).Validate(); !errors.Is(err, ErrSamePlayerSubstituted) {
		t.Fatalf("expected ErrSamePlayerSubstituted, got %v", err)
	}
}

func TestEvents_ValidateRejectsDuplicateLineupPlayer(t *testing.T) {
	events := Events{
		Lineups: []LineupEntry{
			{PlayerID: 9, Position: "FW", IsStarting: true},
			{PlayerID: 9, Position: "MF"},
		},
	}

	if err := events.Validate(); !errors.Is(err, ErrDuplicateLineupEntry) {
		t.Fatalf("expected ErrDuplicateLineupEntry, got %v", err)
	}
}

func TestEvents_NormalizeReturnsEmptySlices(t *testing.T) {
	events := Events{}.Normalize()
	if events.Goals == nil || events.Cards == nil || events.Substitutions == nil || events.Lineups == nil {
		t.Fatalf("expected non-nil collections: %+v", events)
	}
}
