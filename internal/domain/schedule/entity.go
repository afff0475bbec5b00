// internal/domain/schedule/entity.go
package schedule

import (
	"fmt"
	"time"
)

// StoreSchedule holds the owner-level availability settings. The manual
// override fields (ReopenAt, IsIndefinitelyClosed) take precedence over the
// weekly schedule; an expired ReopenAt is treated as cleared.
type StoreSchedule struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	OwnerID              uint       `gorm:"not null;uniqueIndex" json:"owner_id"`
	IsAlwaysOpen         bool       `gorm:"default:false" json:"is_always_open"`
	IsIndefinitelyClosed bool       `gorm:"default:false" json:"is_indefinitely_closed"`
	ReopenAt             *time.Time `json:"reopen_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Relationships
	Days []DailySchedule `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"days"`
}

// DailySchedule is one weekday's opening window. Times are local wall-clock
// strings in HH:MM form; CloseTime earlier than OpenTime means the window
// runs past midnight into the next day.
type DailySchedule struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	ScheduleID uint         `gorm:"not null;index" json:"schedule_id"`
	Weekday    time.Weekday `gorm:"not null" json:"weekday"`
	IsOpen     bool         `gorm:"default:true" json:"is_open"`
	OpenTime   string       `gorm:"size:5;default:'09:00'" json:"open_time"`
	CloseTime  string       `gorm:"size:5;default:'18:00'" json:"close_time"`
}

// TableName overrides
func (StoreSchedule) TableName() string { return "store_schedules" }
func (DailySchedule) TableName() string { return "daily_schedules" }

// DayFor returns the row for the given weekday, or nil when missing.
func (s *StoreSchedule) DayFor(weekday time.Weekday) *DailySchedule {
	for i := range s.Days {
		if s.Days[i].Weekday == weekday {
			return &s.Days[i]
		}
	}
	return nil
}

// parseClock converts an HH:MM string to minutes since midnight.
func parseClock(value string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", value)
	}
	return h*60 + m, nil
}

// Validate checks the day's window is well formed. Equal open and close
// times are rejected; use IsOpen=false for a closed day and IsAlwaysOpen
// for a 24-hour store.
func (d *DailySchedule) Validate() error {
	open, err := parseClock(d.OpenTime)
	if err != nil {
		return err
	}
	close, err := parseClock(d.CloseTime)
	if err != nil {
		return err
	}
	if open == close {
		return fmt.Errorf("open and close time must differ for %s", d.Weekday)
	}
	return nil
}
