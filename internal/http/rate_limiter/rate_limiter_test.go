package rate_limiter

import (
	"testing"
	"time"
)

func TestLimiter_BurstPerKey(t *testing.T) {
	l := New(0.001, 2)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("expected burst of 2 to pass")
	}
	if l.Allow("a") {
		t.Error("third request must be limited")
	}
	if !l.Allow("b") {
		t.Error("other clients have their own bucket")
	}
}

func TestLimiter_RemoveIdle(t *testing.T) {
	l := New(1, 1)
	l.Allow("a")
	l.Allow("b")

	l.removeIdle(time.Now())
	if l.Len() != 2 {
		t.Fatalf("expected fresh visitors to stay, got %d", l.Len())
	}

	l.removeIdle(time.Now().Add(10 * time.Minute))
	if l.Len() != 0 {
		t.Errorf("expected idle visitors removed, got %d", l.Len())
	}
}
