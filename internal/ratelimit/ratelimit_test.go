package ratelimit

import (
	"testing"
	"time"
)

func TestFixedWindow_BlocksOverLimit(t *testing.T) {
	lim := NewFixedWindow(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !lim.Allow("1.2.3.4") {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if lim.Allow("1.2.3.4") {
		t.Fatalf("4th call within window should be blocked")
	}
	// other keys are independent
	if !lim.Allow("5.6.7.8") {
		t.Fatalf("different key must not share the counter")
	}
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	lim := NewFixedWindow(1, time.Minute)
	now := time.Unix(1000, 0)
	lim.now = func() time.Time { return now }

	if !lim.Allow("k") {
		t.Fatalf("first call should pass")
	}
	if lim.Allow("k") {
		t.Fatalf("second call in same window should be blocked")
	}

	now = now.Add(61 * time.Second)
	if !lim.Allow("k") {
		t.Fatalf("call after the window rolls over should pass")
	}
}
