package state

import (
	"testing"

	"github.com/google/uuid"

	"guilinpaizi/engine/card"
	"guilinpaizi/engine/hand"
	"guilinpaizi/engine/meld"
)

func newTwoPlayerGame(t *testing.T, seed int64) (*GameState, uuid.UUID, uuid.UUID) {
	t.Helper()
	g := New(card.NewSeeded(seed))
	p0 := NewPlayer(uuid.New(), "dealer")
	p1 := NewPlayer(uuid.New(), "opponent")
	if err := g.AddPlayer(p0); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPlayer(p1); err != nil {
		t.Fatal(err)
	}
	if err := g.StartHand(0); err != nil {
		t.Fatal(err)
	}
	return g, p0.ID, p1.ID
}

// S1: two players, seeded deck, dealer deals 21+20; dealer discards, opponent discards.
func TestScenarioS1DealAndTwoDiscards(t *testing.T) {
	g, dealer, opp := newTwoPlayerGame(t, 7)
	if g.Deck.Len() != 80-41 {
		t.Fatalf("expected %d cards left after deal, got %d", 80-41, g.Deck.Len())
	}
	if _, err := g.Discard(dealer, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ResolveClaimWindow(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := g.DrawForCurrent(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Discard(opp, 0); err != nil {
		t.Fatal(err)
	}
	if g.Deck.Len() != 80-41-2 {
		t.Fatalf("expected %d cards left, got %d", 80-41-2, g.Deck.Len())
	}
	if len(g.DiscardPile) != 2 {
		t.Fatalf("expected 2 discards, got %d", len(g.DiscardPile))
	}
}

// forceDiscard replaces a player's hand so it contains exactly one copy of
// the given card, then discards it from the dealer's seat to feed a claim test.
func forceDiscard(t *testing.T, g *GameState, dealer uuid.UUID, c card.Card) {
	t.Helper()
	existing := g.Hands[dealer].Cards()
	h := hand.New(append(existing, c))
	h.Sort()
	g.Hands[dealer] = h
	idx := h.FindCard(c)
	if idx < 0 {
		t.Fatalf("card %v not found after forced add", c)
	}
	if _, err := g.Discard(dealer, idx); err != nil {
		t.Fatal(err)
	}
}

func TestScenarioS2ValidChiRun(t *testing.T) {
	g, dealer, opp := newTwoPlayerGame(t, 1)
	g.Hands[opp] = hand.New([]card.Card{card.New(card.Small, 1), card.New(card.Small, 2)})

	forceDiscard(t, g, dealer, card.New(card.Small, 3))

	if err := g.SubmitClaim(ClaimRequest{Player: opp, Type: ClaimChi, CardIndices: []int{0, 1}}); err != nil {
		t.Fatal(err)
	}
	res, err := g.ResolveClaimWindow()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Type != ClaimChi {
		t.Fatalf("expected chi to win claim window, got %+v", res)
	}
	if res.Meld.Huxi() != 3 {
		t.Fatalf("expected huxi 3, got %d", res.Meld.Huxi())
	}
}

func TestScenarioS4Chi2710(t *testing.T) {
	g, dealer, opp := newTwoPlayerGame(t, 2)
	g.Hands[opp] = hand.New([]card.Card{card.New(card.Small, 2), card.New(card.Small, 7)})

	forceDiscard(t, g, dealer, card.New(card.Small, 10))

	if err := g.SubmitClaim(ClaimRequest{Player: opp, Type: ClaimChi, CardIndices: []int{0, 1}}); err != nil {
		t.Fatal(err)
	}
	res, err := g.ResolveClaimWindow()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Meld.Huxi() != 3 {
		t.Fatalf("expected 2-7-10 chi accepted with huxi 3, got %+v", res)
	}
}

func TestScenarioS5Peng(t *testing.T) {
	g, dealer, opp := newTwoPlayerGame(t, 3)
	big5 := card.New(card.Big, 5)
	g.Hands[opp] = hand.New([]card.Card{big5, big5})

	forceDiscard(t, g, dealer, big5)

	if err := g.SubmitClaim(ClaimRequest{Player: opp, Type: ClaimPeng}); err != nil {
		t.Fatal(err)
	}
	res, err := g.ResolveClaimWindow()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Meld.Huxi() != 6 {
		t.Fatalf("expected peng huxi 6, got %+v", res)
	}
}

func TestScenarioS3InvalidChiAcrossSuits(t *testing.T) {
	cards := []card.Card{card.New(card.Small, 1), card.New(card.Big, 2), card.New(card.Small, 3)}
	if meld.IsValidChiRun(cards) {
		t.Fatal("expected cross-suit run to be invalid")
	}
}

func TestScenarioS6HuThreshold(t *testing.T) {
	g, dealer, _ := newTwoPlayerGame(t, 4)
	// 替换为一手干净的手牌：只留一对将牌等待和牌，已声明牌组单独叠加，
	// 不与 CanHu 的结构合法性检查（engine/meld.IsCompleteWinShape）冲突。
	h := hand.New([]card.Card{card.New(card.Small, 9), card.New(card.Small, 9)})
	g.Hands[dealer] = h
	h.AddMeld(meld.New(meld.Peng, []card.Card{card.New(card.Small, 1), card.New(card.Small, 1), card.New(card.Small, 1)}, true))
	h.AddMeld(meld.New(meld.Peng, []card.Card{card.New(card.Small, 2), card.New(card.Small, 2), card.New(card.Small, 2)}, true))
	h.AddMeld(meld.New(meld.Sao, []card.Card{card.New(card.Small, 3), card.New(card.Small, 3), card.New(card.Small, 3)}, true))
	if h.TotalHuxi() != 9 {
		t.Fatalf("expected huxi 9, got %d", h.TotalHuxi())
	}
	if h.CanHu() {
		t.Fatal("expected can_hu = false at huxi 9")
	}
	h.AddMeld(meld.New(meld.Chi, []card.Card{card.New(card.Small, 4), card.New(card.Small, 5), card.New(card.Small, 6)}, true))
	if !h.CanHu() {
		t.Fatal("expected can_hu = true after adding a chi")
	}
}

func TestTurnLegalityRejectsWrongPlayer(t *testing.T) {
	g, _, opp := newTwoPlayerGame(t, 5)
	if _, err := g.Discard(opp, 0); err == nil {
		t.Fatal("expected not-your-turn error")
	}
}

func TestConservationOfCards(t *testing.T) {
	g, dealer, opp := newTwoPlayerGame(t, 9)
	if _, err := g.Discard(dealer, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ResolveClaimWindow(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := g.DrawForCurrent(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Discard(opp, 0); err != nil {
		t.Fatal(err)
	}
	all := g.AllCards()
	if len(all) != 80 {
		t.Fatalf("expected 80 cards conserved, got %d", len(all))
	}
	counts := make(map[card.Card]int)
	for _, c := range all {
		counts[c]++
	}
	for c, n := range counts {
		if n != 4 {
			t.Fatalf("card %v: expected 4 copies conserved, got %d", c, n)
		}
	}
}
