// internal/domain/schedule/evaluator.go
package schedule

import (
	"time"
)

// Status is the result of evaluating the schedule at a point in time.
type Status struct {
	IsOpen bool `json:"is_open"`

	// ReopensAt is set when the store is closed by a timed override, so the
	// storefront can show a countdown. Schedule-driven closures carry no
	// countdown.
	ReopensAt *time.Time `json:"reopens_at,omitempty"`

	// OverrideExpired signals that a timed override has passed and should be
	// cleared from storage.
	OverrideExpired bool `json:"-"`
}

// Evaluate computes whether the store accepts orders at the given instant.
// It is a pure function of the schedule and the clock; persistence of an
// expired override is the caller's job.
//
// Precedence: indefinite closure, then timed override, then always-open,
// then the weekly schedule.
func Evaluate(s *StoreSchedule, now time.Time) Status {
	if s == nil {
		return Status{IsOpen: true}
	}

	if s.IsIndefinitelyClosed {
		return Status{IsOpen: false}
	}

	var expired bool
	if s.ReopenAt != nil {
		if now.Before(*s.ReopenAt) {
			reopens := *s.ReopenAt
			return Status{IsOpen: false, ReopensAt: &reopens}
		}
		// The override has passed; fall through to the regular schedule.
		expired = true
	}

	if s.IsAlwaysOpen {
		return Status{IsOpen: true, OverrideExpired: expired}
	}

	return Status{IsOpen: withinWeeklySchedule(s, now), OverrideExpired: expired}
}

// withinWeeklySchedule checks now against today's window. A close time
// earlier than the open time means the window wraps past midnight, so the
// early hours of the same weekday count as open too.
func withinWeeklySchedule(s *StoreSchedule, now time.Time) bool {
	today := s.DayFor(now.Weekday())
	if today == nil || !today.IsOpen {
		return false
	}

	open, err1 := parseClock(today.OpenTime)
	close, err2 := parseClock(today.CloseTime)
	if err1 != nil || err2 != nil {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	if close < open {
		return minutes >= open || minutes < close
	}
	return minutes >= open && minutes < close
}
