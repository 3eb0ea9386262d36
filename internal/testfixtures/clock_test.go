package testfixtures

import (
	"testing"
	"time"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Now())
	}
	if clock.Today() != "2026-03-11" {
		t.Fatalf("expected 2026-03-11, got %s", clock.Today())
	}
}

func TestClockAdvanceDaysAndSet(t *testing.T) {
	clock := NewClock(time.Date(2026, time.May, 22, 9, 0, 0, 0, time.UTC))

	if got := clock.AdvanceDays(3); got.Format("2006-01-02") != "2026-05-25" {
		t.Fatalf("advance returned %v", got)
	}

	clock.Set(time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC))
	if clock.AdvanceDays(1).Year() != 2027 {
		t.Fatalf("expected advance to cross the year boundary")
	}
}

func TestClockNowFunc(t *testing.T) {
	clock := NewClock(time.Time{})
	nowFn := clock.NowFunc()

	clock.AdvanceDays(1)
	if got := nowFn(); !got.Equal(clock.Now()) {
		t.Fatalf("expected NowFunc to follow the clock, got %v", got)
	}

	var nilClock *Clock
	if nilClock.NowFunc() == nil {
		t.Fatalf("expected a fallback time source for a nil clock")
	}
}
