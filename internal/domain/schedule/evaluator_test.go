package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func weeklySchedule(days ...DailySchedule) *StoreSchedule {
	return &StoreSchedule{OwnerID: 1, Days: days}
}

func TestEvaluate_Precedence(t *testing.T) {
	reopen := monday(18, 0)
	s := &StoreSchedule{
		OwnerID:              1,
		IsAlwaysOpen:         true,
		IsIndefinitelyClosed: true,
		ReopenAt:             &reopen,
	}

	// Indefinite closure wins over everything and shows no countdown.
	status := Evaluate(s, monday(12, 0))
	assert.False(t, status.IsOpen)
	assert.Nil(t, status.ReopensAt)

	// Timed override beats always-open.
	s.IsIndefinitelyClosed = false
	status = Evaluate(s, monday(12, 0))
	assert.False(t, status.IsOpen)
	require.NotNil(t, status.ReopensAt)
	assert.True(t, status.ReopensAt.Equal(reopen))

	// No overrides left: always-open applies.
	s.ReopenAt = nil
	status = Evaluate(s, monday(12, 0))
	assert.True(t, status.IsOpen)
}

func TestEvaluate_ExpiredOverrideFallsThrough(t *testing.T) {
	reopen := monday(9, 0)
	s := &StoreSchedule{OwnerID: 1, IsAlwaysOpen: true, ReopenAt: &reopen}

	status := Evaluate(s, monday(10, 0))
	assert.True(t, status.IsOpen, "a past reopen time no longer closes the store")
	assert.True(t, status.OverrideExpired)
	assert.Nil(t, status.ReopensAt)
}

func TestEvaluate_DailyWindow(t *testing.T) {
	s := weeklySchedule(
		DailySchedule{Weekday: time.Monday, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
		DailySchedule{Weekday: time.Tuesday, IsOpen: false, OpenTime: "09:00", CloseTime: "17:00"},
	)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before opening", monday(8, 59), false},
		{"at opening", monday(9, 0), true},
		{"midday", monday(12, 30), true},
		{"at closing", monday(17, 0), false},
		{"day marked closed", monday(12, 0).AddDate(0, 0, 1), false},
		{"weekday without a row", monday(12, 0).AddDate(0, 0, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(s, tt.now).IsOpen)
		})
	}
}

func TestEvaluate_OvernightWindow(t *testing.T) {
	s := weeklySchedule(
		DailySchedule{Weekday: time.Monday, IsOpen: true, OpenTime: "22:00", CloseTime: "02:00"},
	)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before opening", monday(21, 59), false},
		{"late evening", monday(23, 30), true},
		{"early morning same weekday", monday(1, 59), true},
		{"after overnight close", monday(3, 0), false},
		{"tuesday has no window of its own", monday(1, 30).AddDate(0, 0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(s, tt.now).IsOpen)
		})
	}
}

func TestEvaluate_NilScheduleIsOpen(t *testing.T) {
	assert.True(t, Evaluate(nil, monday(12, 0)).IsOpen)
}

func TestDailySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		day     DailySchedule
		wantErr bool
	}{
		{"regular window", DailySchedule{Weekday: time.Monday, OpenTime: "09:00", CloseTime: "17:00"}, false},
		{"overnight window", DailySchedule{Weekday: time.Monday, OpenTime: "22:00", CloseTime: "02:00"}, false},
		{"equal times", DailySchedule{Weekday: time.Monday, OpenTime: "09:00", CloseTime: "09:00"}, true},
		{"garbage open time", DailySchedule{Weekday: time.Monday, OpenTime: "late", CloseTime: "17:00"}, true},
		{"hour out of range", DailySchedule{Weekday: time.Monday, OpenTime: "25:00", CloseTime: "17:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
