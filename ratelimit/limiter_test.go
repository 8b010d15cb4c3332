package ratelimit

import "testing"

func TestLimiter_BurstThenThrottle(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow() || !l.Allow() {
		t.Fatal("burst requests should be allowed")
	}
	if l.Allow() {
		t.Fatal("request beyond burst should be rejected")
	}
}
