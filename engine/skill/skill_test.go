package skill

import (
	"testing"

	"github.com/google/uuid"

	"guilinpaizi/engine/card"
	"guilinpaizi/engine/state"
)

func newTwoPlayerGame(t *testing.T, seed int64) (*state.GameState, uuid.UUID, uuid.UUID) {
	t.Helper()
	g := state.New(card.NewSeeded(seed))
	p0 := state.NewPlayer(uuid.New(), "dealer")
	p1 := state.NewPlayer(uuid.New(), "opponent")
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

func TestInstanceExhaustsUses(t *testing.T) {
	g, dealer, _ := newTwoPlayerGame(t, 1)
	in := NewInstance(HuanChong{})
	if r := in.TryUse(g, dealer, nil); !r.Success {
		t.Fatalf("expected success, got %+v", r)
	}
	if r := in.TryUse(g, dealer, nil); r.Success {
		t.Fatal("expected second use to fail: max_uses is 1")
	}
	if r := in.TryUse(g, dealer, nil); r.Message != "技能使用次数已耗尽" {
		t.Fatalf("expected exhausted message, got %q", r.Message)
	}
}

func TestGuZhuRequiresTing(t *testing.T) {
	g, dealer, _ := newTwoPlayerGame(t, 2)
	gz := NewGuZhu()
	if gz.CanUse(g, dealer) {
		t.Fatal("expected GuZhu unusable before reaching ting threshold")
	}
}

func TestFanYaRequiresTarget(t *testing.T) {
	g, dealer, _ := newTwoPlayerGame(t, 3)
	fy := FanYa{}
	if r := fy.Use(g, dealer, nil); r.Success {
		t.Fatal("expected failure without a target")
	}
	other := uuid.New()
	if r := fy.Use(g, dealer, &other); !r.Success {
		t.Fatalf("expected success with target, got %+v", r)
	}
}

func TestManagerAssignAndUse(t *testing.T) {
	g, dealer, _ := newTwoPlayerGame(t, 4)
	m := NewManager()
	m.AssignSkills(dealer, []Skill{SuanYu{}, NewWenShou()})
	instances, ok := m.PlayerSkills(dealer)
	if !ok || len(instances) != 2 {
		t.Fatalf("expected 2 assigned skills, got %d ok=%v", len(instances), ok)
	}
	result, ok := m.UseSkill(dealer, 0, g, nil)
	if !ok || !result.Success {
		t.Fatalf("expected SuanYu use to succeed, got ok=%v result=%+v", ok, result)
	}
	if _, ok := m.UseSkill(dealer, 99, g, nil); ok {
		t.Fatal("expected out-of-range index to fail")
	}
}

func TestAllSkillsHaveUniqueIDs(t *testing.T) {
	seen := make(map[int]bool)
	for _, s := range All() {
		if seen[s.ID()] {
			t.Fatalf("duplicate skill id %d", s.ID())
		}
		seen[s.ID()] = true
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 distinct skills, got %d", len(seen))
	}
}

func TestConditionHuxiAbove(t *testing.T) {
	g, dealer, _ := newTwoPlayerGame(t, 5)
	c := HuxiAbove(0)
	if !c.Check(g, dealer) {
		t.Fatal("expected HuxiAbove(0) to always hold")
	}
	c2 := HuxiAbove(1000)
	if c2.Check(g, dealer) {
		t.Fatal("expected HuxiAbove(1000) to fail for a fresh hand")
	}
}
