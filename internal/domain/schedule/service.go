// internal/domain/schedule/service.go
package schedule

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles store schedule business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new schedule service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// UpdateScheduleRequest replaces the owner's availability settings.
type UpdateScheduleRequest struct {
	IsAlwaysOpen         bool                `json:"is_always_open"`
	IsIndefinitelyClosed bool                `json:"is_indefinitely_closed"`
	ReopenAt             *time.Time          `json:"reopen_at"`
	Days                 []DailyScheduleItem `json:"days" binding:"max=7,dive"`
}

// DailyScheduleItem is one weekday entry of an update request.
type DailyScheduleItem struct {
	Weekday   time.Weekday `json:"weekday" binding:"min=0,max=6"`
	IsOpen    bool         `json:"is_open"`
	OpenTime  string       `json:"open_time" binding:"required"`
	CloseTime string       `json:"close_time" binding:"required"`
}

// GetSchedule loads the owner's schedule, creating the default one on first
// access. A merchant without a configured schedule is always open.
func (s *Service) GetSchedule(ownerID uint) (*StoreSchedule, error) {
	var schedule StoreSchedule
	result := s.db.Preload("Days").Where("owner_id = ?", ownerID).First(&schedule)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			schedule = StoreSchedule{OwnerID: ownerID, IsAlwaysOpen: true}
			if err := s.db.Create(&schedule).Error; err != nil {
				return nil, fmt.Errorf("failed to create default schedule: %w", err)
			}
			return &schedule, nil
		}
		return nil, fmt.Errorf("failed to retrieve schedule: %w", result.Error)
	}
	return &schedule, nil
}

// UpdateSchedule replaces the schedule and its daily windows in one
// transaction.
func (s *Service) UpdateSchedule(ownerID uint, req *UpdateScheduleRequest) (*StoreSchedule, error) {
	schedule, err := s.GetSchedule(ownerID)
	if err != nil {
		return nil, err
	}

	days := make([]DailySchedule, 0, len(req.Days))
	seen := make(map[time.Weekday]bool)
	for _, item := range req.Days {
		if seen[item.Weekday] {
			return nil, fmt.Errorf("duplicate weekday %s", item.Weekday)
		}
		seen[item.Weekday] = true
		day := DailySchedule{
			ScheduleID: schedule.ID,
			Weekday:    item.Weekday,
			IsOpen:     item.IsOpen,
			OpenTime:   item.OpenTime,
			CloseTime:  item.CloseTime,
		}
		if err := day.Validate(); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"is_always_open":         req.IsAlwaysOpen,
			"is_indefinitely_closed": req.IsIndefinitelyClosed,
			"reopen_at":              req.ReopenAt,
		}
		if err := tx.Model(schedule).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}
		if err := tx.Where("schedule_id = ?", schedule.ID).Delete(&DailySchedule{}).Error; err != nil {
			return fmt.Errorf("failed to replace daily schedules: %w", err)
		}
		if len(days) > 0 {
			if err := tx.Create(&days).Error; err != nil {
				return fmt.Errorf("failed to create daily schedules: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	schedule.IsAlwaysOpen = req.IsAlwaysOpen
	schedule.IsIndefinitelyClosed = req.IsIndefinitelyClosed
	schedule.ReopenAt = req.ReopenAt
	schedule.Days = days
	return schedule, nil
}

// CloseUntil sets a timed override: the store is closed and reopens at the
// given instant.
func (s *Service) CloseUntil(ownerID uint, reopenAt time.Time) (*StoreSchedule, error) {
	if !reopenAt.After(time.Now()) {
		return nil, fmt.Errorf("reopen time must be in the future")
	}
	schedule, err := s.GetSchedule(ownerID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"reopen_at":              reopenAt,
		"is_indefinitely_closed": false,
	}
	if err := s.db.Model(schedule).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to set reopen time: %w", err)
	}
	schedule.ReopenAt = &reopenAt
	schedule.IsIndefinitelyClosed = false
	return schedule, nil
}

// Evaluate reports the store's current availability. An expired timed
// override is cleared from storage on the way through, so it cannot keep a
// store closed past its reopen time.
func (s *Service) Evaluate(ownerID uint, now time.Time) (Status, error) {
	schedule, err := s.GetSchedule(ownerID)
	if err != nil {
		return Status{}, err
	}

	status := Evaluate(schedule, now)
	if status.OverrideExpired {
		if err := s.db.Model(schedule).Update("reopen_at", nil).Error; err != nil {
			s.logger.WithError(err).WithField("owner_id", ownerID).
				Warn("Failed to clear expired schedule override")
		} else {
			schedule.ReopenAt = nil
		}
	}
	return status, nil
}
