package card

import "testing"

func TestNewDeckHas80Cards(t *testing.T) {
	d := New()
	if d.Len() != 80 {
		t.Fatalf("expected 80 cards, got %d", d.Len())
	}
}

func TestNewDeckComposition(t *testing.T) {
	d := New()
	counts := make(map[Card]int)
	for _, c := range d.Cards() {
		counts[c]++
	}
	if len(counts) != 20 {
		t.Fatalf("expected 20 distinct cards, got %d", len(counts))
	}
	for c, n := range counts {
		if n != 4 {
			t.Fatalf("card %v expected 4 copies, got %d", c, n)
		}
	}
}

func TestDrawReducesLength(t *testing.T) {
	d := New()
	_, ok := d.Draw()
	if !ok {
		t.Fatal("expected a card")
	}
	if d.Len() != 79 {
		t.Fatalf("expected 79 remaining, got %d", d.Len())
	}
}

func TestDrawExhausted(t *testing.T) {
	d := NewSeeded(1)
	d.DrawN(80)
	if d.Len() != 0 {
		t.Fatalf("expected 0 remaining, got %d", d.Len())
	}
	_, ok := d.Draw()
	if ok {
		t.Fatal("expected draw to fail on empty deck")
	}
}

func TestSeededShuffleDeterministic(t *testing.T) {
	d1 := NewSeeded(42)
	d1.Shuffle()
	d2 := NewSeeded(42)
	d2.Shuffle()
	c1 := d1.Cards()
	c2 := d2.Cards()
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("expected identical shuffle order at index %d", i)
		}
	}
}

func TestIsRed(t *testing.T) {
	cases := []struct {
		value int
		red   bool
	}{
		{1, false}, {2, true}, {3, false}, {7, true}, {10, true}, {9, false},
	}
	for _, tc := range cases {
		c := New(Small, tc.value)
		if c.IsRed() != tc.red {
			t.Errorf("value %d: expected red=%v, got %v", tc.value, tc.red, c.IsRed())
		}
	}
}
