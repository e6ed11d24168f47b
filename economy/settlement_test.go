package economy

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// S7: 2 players, base_bet 1000, rake 5%, winner zimo, no skill modifiers:
// pot=2000, rake=100, distributable=1900, winner_final=3800 (x2 zimo), loser_final=-1000.
func TestScenarioS7Settlement(t *testing.T) {
	calc := NewCalculator(DefaultEconomyConfig())
	winner := uuid.New()
	loser := uuid.New()
	outcomes := []GameOutcome{
		{PlayerID: winner, IsWinner: true, IsZimo: true},
		{PlayerID: loser, IsWinner: false},
	}
	results := calc.Calculate(1000, outcomes)
	byPlayer := map[uuid.UUID]SettlementResult{}
	for _, r := range results {
		byPlayer[r.PlayerID] = r
	}
	if got := byPlayer[winner].RakeDeduction; got != 100 {
		t.Fatalf("expected rake 100, got %d", got)
	}
	if got := byPlayer[winner].FinalBeans; got != 3800 {
		t.Fatalf("expected winner final 3800, got %d", got)
	}
	if got := byPlayer[loser].FinalBeans; got != -1000 {
		t.Fatalf("expected loser final -1000, got %d", got)
	}
}

// Without any multiplier (no zimo/tianhu/dihu), the pot redistribution is
// exactly zero-sum net of the winner's own ante: distributable - baseBet
// for the winner, -baseBet for each loser, balances against rake.
func TestConservationWithoutMultiplier(t *testing.T) {
	calc := NewCalculator(DefaultEconomyConfig())
	winner := uuid.New()
	loser := uuid.New()
	results := calc.Calculate(1000, []GameOutcome{
		{PlayerID: winner, IsWinner: true},
		{PlayerID: loser, IsWinner: false},
	})
	var winnerFinal, loserFinal, rake int64
	for _, r := range results {
		rake = r.RakeDeduction
		if r.Outcome {
			winnerFinal = r.FinalBeans
		} else {
			loserFinal = r.FinalBeans
		}
	}
	// winner's final already includes their own ante back; net participant
	// change is (winnerFinal - baseBet) + loserFinal, which plus rake is 0.
	net := (winnerFinal - 1000) + loserFinal + rake
	if net < -1 || net > 1 {
		t.Fatalf("expected conservation within rounding, got net=%d", net)
	}
}

func TestDeductSafety(t *testing.T) {
	now := time.Now()
	b := NewHappyBeans(100)
	if ok := b.Deduct(150, TransactionLoss, now); ok {
		t.Fatal("expected deduct to fail when amount exceeds balance")
	}
	if b.Balance != 100 {
		t.Fatalf("expected balance unchanged at 100, got %d", b.Balance)
	}
	if ok := b.Deduct(50, TransactionLoss, now); !ok || b.Balance != 50 {
		t.Fatalf("expected successful deduct to 50, got ok=%v balance=%d", ok, b.Balance)
	}
}
