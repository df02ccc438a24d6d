package clock

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestTickAdvancesHeldInstant(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	fc := &fakeClock{now: start}
	ctx := New(fc)

	fc.advance(5 * time.Second)
	if got := ctx.Now(); !got.Equal(start) {
		t.Fatalf("held instant moved without a tick: %v", got)
	}

	ctx.Tick()
	if got := ctx.Now(); !got.Equal(start.Add(5 * time.Second)) {
		t.Fatalf("expected %v after tick, got %v", start.Add(5*time.Second), got)
	}
}

func TestElapsedLabel(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		observed time.Time
		want     string
	}{
		{"just now", now, "0 minutes ago"},
		{"59 seconds", now.Add(-59 * time.Second), "0 minutes ago"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"one and a half", now.Add(-90 * time.Second), "1 minute ago"},
		{"two minutes", now.Add(-2 * time.Minute), "2 minutes ago"},
		{"an hour", now.Add(-time.Hour), "60 minutes ago"},
		{"future", now.Add(3 * time.Minute), "0 minutes ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedLabel(now, tt.observed); got != tt.want {
				t.Errorf("ElapsedLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextElapsedLabelUsesHeldInstant(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	fc := &fakeClock{now: start}
	ctx := New(fc)
	observed := start.Add(-time.Minute)

	fc.advance(10 * time.Minute)
	if got := ctx.ElapsedLabel(observed); got != "1 minute ago" {
		t.Fatalf("expected label from held instant, got %q", got)
	}
	ctx.Tick()
	if got := ctx.ElapsedLabel(observed); got != "11 minutes ago" {
		t.Fatalf("expected label after tick, got %q", got)
	}
}

func TestLocalizeDate(t *testing.T) {
	// 2024-03-10 23:30 UTC is already 2024-03-11 in UTC+2 and still 2024-03-10 in UTC-5.
	instant := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	if got := Localize(instant, 2*3600).Date(); got != "2024-03-11" {
		t.Errorf("UTC+2 date = %s", got)
	}
	if got := Localize(instant, -5*3600).Date(); got != "2024-03-10" {
		t.Errorf("UTC-5 date = %s", got)
	}
	if got := Localize(instant, 19800).Format("15:04"); got != "05:00" {
		t.Errorf("UTC+5:30 wall clock = %s", got)
	}
}

func TestLocalTimeIgnoresProcessZone(t *testing.T) {
	instant := time.Date(2024, 6, 1, 4, 0, 0, 0, time.FixedZone("elsewhere", -7*3600))
	lt := Localize(instant, 3600)
	if got := lt.Format("2006-01-02 15:04"); got != "2024-06-01 12:00" {
		t.Fatalf("expected 12:00 at UTC+1, got %s", got)
	}
}
