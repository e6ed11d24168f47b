package anticheat

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"guilinpaizi/engine/card"
	"guilinpaizi/engine/state"
)

func TestValidateRejectsWrongTurn(t *testing.T) {
	g := state.New(card.NewSeeded(1))
	p0 := state.NewPlayer(uuid.New(), "a")
	p1 := state.NewPlayer(uuid.New(), "b")
	g.AddPlayer(p0)
	g.AddPlayer(p1)
	g.StartHand(0)

	d := NewBasicDetector()
	result := d.Validate(g, p1.ID, state.GameAction{Kind: state.ActionPlayCard, Player: p1.ID})
	if result.Valid {
		t.Fatal("expected invalid: not p1's turn")
	}
}

func TestCheckPatternsDetectsTooFast(t *testing.T) {
	d := NewBasicDetector()
	playerID := uuid.New()
	base := time.Now()
	for i := 0; i < 25; i++ {
		d.RecordAction(playerID, state.GameAction{Kind: state.ActionPlayCard, Player: playerID}, base.Add(time.Duration(i)*10*time.Millisecond))
	}
	patterns := d.CheckPatterns(playerID)
	if len(patterns) != 1 || patterns[0].Type != PatternTooFastActions {
		t.Fatalf("expected one too-fast pattern, got %+v", patterns)
	}
	if len(d.SuspiciousPlayers()) != 1 {
		t.Fatalf("expected player flagged as suspicious")
	}
}

func TestCheckPatternsIgnoresShortHistory(t *testing.T) {
	d := NewBasicDetector()
	playerID := uuid.New()
	d.RecordAction(playerID, state.GameAction{Kind: state.ActionPlayCard, Player: playerID}, time.Now())
	if patterns := d.CheckPatterns(playerID); patterns != nil {
		t.Fatalf("expected no patterns with insufficient history, got %+v", patterns)
	}
}

func TestHistoryRingOverwritesOldest(t *testing.T) {
	d := NewBasicDetector()
	playerID := uuid.New()
	base := time.Now()
	for i := 0; i < historySize+10; i++ {
		d.RecordAction(playerID, state.GameAction{Kind: state.ActionPlayCard, Player: playerID}, base.Add(time.Duration(i)*time.Second))
	}
	records := collectRecords(d.history[playerID])
	if len(records) != historySize {
		t.Fatalf("expected history capped at %d, got %d", historySize, len(records))
	}
}
