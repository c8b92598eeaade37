// Package schedule plans randomized commit times inside a daily work-hour
// window and fires a trigger at each one.
package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/pacerdev/pacer/internal/platform/logger"
)

// Window is a daily time-of-day range, inclusive on both ends.
type Window struct {
	StartHour, StartMin int
	EndHour, EndMin     int
}

// ParseWindow parses "HH:MM" start and end times into a Window.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return Window{}, fmt.Errorf("parsing window start: %w", err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return Window{}, fmt.Errorf("parsing window end: %w", err)
	}

	w := Window{
		StartHour: s.Hour(), StartMin: s.Minute(),
		EndHour: e.Hour(), EndMin: e.Minute(),
	}
	if !w.startOn(time.Now()).Before(w.endOn(time.Now())) {
		return Window{}, fmt.Errorf("window start %s is not before end %s", start, end)
	}
	return w, nil
}

func (w Window) startOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), w.StartHour, w.StartMin, 0, 0, day.Location())
}

func (w Window) endOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), w.EndHour, w.EndMin, 0, 0, day.Location())
}

// Contains reports whether t falls inside the window on its own day.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.startOn(t)) && !t.After(w.endOn(t))
}

// Planner draws randomized commit times inside the window.
type Planner struct {
	Window    Window
	MinPerDay int
	MaxPerDay int
	rng       *rand.Rand
}

// NewPlanner creates a Planner with the given rng.
func NewPlanner(w Window, minPerDay, maxPerDay int, rng *rand.Rand) *Planner {
	return &Planner{Window: w, MinPerDay: minPerDay, MaxPerDay: maxPerDay, rng: rng}
}

// PlanDay returns sorted commit times for the rest of now's day: between
// MinPerDay and MaxPerDay instants drawn uniformly from [max(now, window
// start), window end]. Nil when the window has already closed.
func (p *Planner) PlanDay(now time.Time) []time.Time {
	start := p.Window.startOn(now)
	end := p.Window.endOn(now)

	if now.After(end) {
		return nil
	}
	if now.After(start) {
		start = now
	}

	span := int(end.Sub(start) / time.Second)
	if span <= 0 {
		return nil
	}

	n := p.MinPerDay
	if p.MaxPerDay > p.MinPerDay {
		n = p.MinPerDay + p.rng.Intn(p.MaxPerDay-p.MinPerDay+1)
	}

	times := make([]time.Time, 0, n)
	for range n {
		offset := time.Duration(p.rng.Intn(span+1)) * time.Second
		times = append(times, start.Add(offset))
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// Scheduler fires a trigger at each planned time, replanning every day at
// the window start.
type Scheduler struct {
	Planner *Planner
	// Trigger runs one commit cycle. Errors are logged, never fatal; the
	// next planned time still fires.
	Trigger func(ctx context.Context) error
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for {
		now := time.Now()
		plan := s.Planner.PlanDay(now)
		log.Info("planned commit times", "count", len(plan))

		for _, at := range plan {
			if err := sleepUntil(ctx, at); err != nil {
				return err
			}
			log.Debug("trigger fired", "planned_for", at)
			if err := s.Trigger(ctx); err != nil {
				log.Error("commit cycle failed", "error", err)
			}
		}

		// Wait for the next day's window start before replanning.
		next := s.Planner.Window.startOn(now.AddDate(0, 0, 1))
		log.Info("day plan exhausted, sleeping until next window", "next", next)
		if err := sleepUntil(ctx, next); err != nil {
			return err
		}
	}
}

// sleepUntil blocks until the given time or context cancellation.
func sleepUntil(ctx context.Context, at time.Time) error {
	d := time.Until(at)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
