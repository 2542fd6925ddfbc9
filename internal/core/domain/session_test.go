package domain

import (
	"testing"
	"time"
)

func TestSession_ExpiredBoundaryIsInclusive(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := &Session{ID: "s", UserID: "u", CreatedAt: base, LastActivityAt: base}
	timeout := 60 * time.Second

	if s.Expired(base, timeout) {
		t.Fatalf("session expired with zero elapsed time")
	}
	if s.Expired(base.Add(60*time.Second), timeout) {
		t.Fatalf("session expired exactly at the boundary; elapsed == timeout must stay live")
	}
	if !s.Expired(base.Add(61*time.Second), timeout) {
		t.Fatalf("session still live one second past the boundary")
	}
}

func TestValidID(t *testing.T) {
	valid := []string{"monday", "MON_1", "a", "x-9", "0123456789"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Fatalf("ValidID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", " ", "mon day", "a;b", "day/1", "ünïcode", string(make([]byte, 65))}
	for _, id := range invalid {
		if ValidID(id) {
			t.Fatalf("ValidID(%q) = true, want false", id)
		}
	}
}
