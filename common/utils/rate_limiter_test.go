package utils

import "testing"

func TestRateLimiterAllowsBurstUpToCapacity(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("expected token %d of burst to be allowed", i)
		}
	}
	if rl.Allow() {
		t.Fatal("expected bucket exhausted after consuming full capacity")
	}
}

func TestContains(t *testing.T) {
	if !Contains([]int{1, 2, 3}, 2) {
		t.Fatal("expected 2 to be found")
	}
	if Contains([]string{"a", "b"}, "c") {
		t.Fatal("expected c to be absent")
	}
}
