package room

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"guilinpaizi/protocol"
)

func newTestRoom() *Room {
	cfg := DefaultConfig()
	cfg.ClaimWindow = 10 * time.Millisecond
	return New("test-room", cfg)
}

func TestJoinAndReadyStartsHand(t *testing.T) {
	r := newTestRoom()
	p1, p2 := uuid.New(), uuid.New()
	if err := r.Join(p1, "甲"); err != nil {
		t.Fatalf("join p1: %v", err)
	}
	if err := r.Join(p2, "乙"); err != nil {
		t.Fatalf("join p2: %v", err)
	}

	ch1 := r.Subscribe(p1)
	ch2 := r.Subscribe(p2)
	drain(ch1)
	drain(ch2)

	if err := r.Ready(p1); err != nil {
		t.Fatalf("ready p1: %v", err)
	}
	if err := r.Ready(p2); err != nil {
		t.Fatalf("ready p2: %v", err)
	}

	if r.State() != StatePlaying {
		t.Fatalf("expected room to auto-start once both ready, got state=%v", r.State())
	}
	if r.game.Phase.String() != "playing" {
		t.Fatalf("expected game phase playing, got %s", r.game.Phase)
	}
}

func TestJoinRejectsWhenFull(t *testing.T) {
	r := newTestRoom()
	r.cfg.MaxPlayers = 1
	p1, p2 := uuid.New(), uuid.New()
	if err := r.Join(p1, "甲"); err != nil {
		t.Fatalf("join p1: %v", err)
	}
	if err := r.Join(p2, "乙"); err == nil {
		t.Fatal("expected join to fail once room is full")
	}
}

func TestSubmitIntentRejectsBeforeGameStarts(t *testing.T) {
	r := newTestRoom()
	p1 := uuid.New()
	if err := r.Join(p1, "甲"); err != nil {
		t.Fatalf("join: %v", err)
	}
	err := r.SubmitIntent(p1, protocol.IntentEnvelope{Type: protocol.IntentPlayCard, CardIdx: 0})
	if err == nil {
		t.Fatal("expected play_card before game start to be rejected")
	}
}

func TestPlayCardRejectsWrongTurn(t *testing.T) {
	r := newTestRoom()
	p1, p2 := uuid.New(), uuid.New()
	r.Join(p1, "甲")
	r.Join(p2, "乙")
	r.Subscribe(p1)
	r.Subscribe(p2)
	r.Ready(p1)
	r.Ready(p2)

	current := r.game.CurrentPlayer()
	other := p1
	if current.ID == p1 {
		other = p2
	}
	err := r.SubmitIntent(other, protocol.IntentEnvelope{Type: protocol.IntentPlayCard, CardIdx: 0})
	if err == nil {
		t.Fatal("expected play_card from non-current player to be rejected")
	}
}

func drain(ch <-chan any) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
