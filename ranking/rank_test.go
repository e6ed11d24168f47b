package ranking

import "testing"

func TestPromoteAtFiveStars(t *testing.T) {
	r := NewRank(Bronze, 4)
	r.AddStar()
	if r.Tier != Silver || r.Stars != 0 {
		t.Fatalf("expected promotion to Silver/0, got %v/%d", r.Tier, r.Stars)
	}
}

func TestGrandMasterTerminal(t *testing.T) {
	r := NewRank(GrandMaster, 4)
	r.AddStar()
	if r.Tier != GrandMaster {
		t.Fatalf("expected GrandMaster to stay terminal, got %v", r.Tier)
	}
}

func TestDemoteAcrossTierBoundary(t *testing.T) {
	r := NewRank(Silver, 0)
	r.Demote()
	if r.Tier != Bronze || r.Stars != 4 {
		t.Fatalf("expected Bronze/4 after demotion, got %v/%d", r.Tier, r.Stars)
	}
}

func TestDemoteWithinTier(t *testing.T) {
	r := NewRank(Gold, 3)
	r.Demote()
	if r.Tier != Gold || r.Stars != 2 {
		t.Fatalf("expected Gold/2, got %v/%d", r.Tier, r.Stars)
	}
}

func TestEloSymmetryAtEqualRating(t *testing.T) {
	winner := NewEloRating()
	loser := NewEloRating()
	winnerRank := NewRank(Bronze, 0)
	loserRank := NewRank(Bronze, 0)
	before := winner.Rating
	UpdateAfterMatch(&winner, &loser, &winnerRank, &loserRank)
	winnerDelta := winner.Rating - before
	loserDelta := loser.Rating - before
	if diff := winnerDelta + loserDelta; diff < -1 || diff > 1 {
		t.Fatalf("expected symmetric deltas within 1, got winner=%d loser=%d", winnerDelta, loserDelta)
	}
}
