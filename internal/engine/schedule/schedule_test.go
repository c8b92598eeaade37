package schedule

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := ParseWindow(start, end)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestParseWindow(t *testing.T) {
	w := mustWindow(t, "09:00", "18:30")
	if w.StartHour != 9 || w.StartMin != 0 || w.EndHour != 18 || w.EndMin != 30 {
		t.Errorf("unexpected window: %+v", w)
	}
}

func TestParseWindow_Invalid(t *testing.T) {
	if _, err := ParseWindow("9am", "18:00"); err == nil {
		t.Error("expected error for bad start format")
	}
	if _, err := ParseWindow("18:00", "09:00"); err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestWindowContains(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)

	cases := []struct {
		hour, minute int
		want         bool
	}{
		{8, 59, false},
		{9, 0, true},
		{12, 30, true},
		{18, 0, true},
		{18, 1, false},
	}
	for _, c := range cases {
		at := day.Add(time.Duration(c.hour)*time.Hour + time.Duration(c.minute)*time.Minute)
		if got := w.Contains(at); got != c.want {
			t.Errorf("%02d:%02d: expected %v, got %v", c.hour, c.minute, c.want, got)
		}
	}
}

func TestPlanDay_BoundsAndOrder(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")
	p := NewPlanner(w, 3, 8, rand.New(rand.NewSource(11)))

	now := time.Date(2024, 3, 14, 7, 0, 0, 0, time.Local)
	plan := p.PlanDay(now)

	if len(plan) < 3 || len(plan) > 8 {
		t.Fatalf("plan size %d outside [3,8]", len(plan))
	}
	for i, at := range plan {
		if !w.Contains(at) {
			t.Errorf("planned time %v outside window", at)
		}
		if i > 0 && at.Before(plan[i-1]) {
			t.Errorf("plan not sorted: %v before %v", at, plan[i-1])
		}
	}
}

func TestPlanDay_StartsFromNowInsideWindow(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")
	p := NewPlanner(w, 5, 5, rand.New(rand.NewSource(5)))

	now := time.Date(2024, 3, 14, 16, 45, 0, 0, time.Local)
	for _, at := range p.PlanDay(now) {
		if at.Before(now) {
			t.Errorf("planned time %v is in the past", at)
		}
	}
}

func TestPlanDay_AfterWindowClosed(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")
	p := NewPlanner(w, 3, 8, rand.New(rand.NewSource(1)))

	now := time.Date(2024, 3, 14, 19, 0, 0, 0, time.Local)
	if plan := p.PlanDay(now); plan != nil {
		t.Errorf("expected nil plan after window closed, got %v", plan)
	}
}

func TestScheduler_StopsOnCancelledContext(t *testing.T) {
	w := mustWindow(t, "00:00", "23:59")
	p := NewPlanner(w, 1, 1, rand.New(rand.NewSource(9)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scheduler{
		Planner: p,
		Trigger: func(context.Context) error { return nil },
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
