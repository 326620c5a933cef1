package core

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"veritime.com/veritime/attendance/model"
)

// CheckDuplicate rejects a submission when the user already has a record for
// the day, or when their most recent record (any date) was created within the
// duplicate interval. The second rule guards the near-midnight boundary where
// "today" rolls over mid-shift.
func CheckDuplicate(db *gorm.DB, username, date string, now time.Time, interval time.Duration) error {
	var existing model.AttendanceRecord
	err := db.Where("username = ? AND date = ?", username, date).First(&existing).Error
	if err == nil {
		return &DuplicateError{Reason: fmt.Sprintf(
			"attendance already marked today at %s", existing.ClockIn)}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing record: %w", err)
	}

	var latest model.AttendanceRecord
	err = db.Where("username = ?", username).Order("created_at DESC").First(&latest).Error
	if err == nil {
		// Only a creation in the recent past counts. With a pinned clock
		// (historical imports) the latest record can postdate "now"; that is
		// not a resubmission.
		gap := now.Sub(latest.CreatedAt)
		if gap >= 0 && gap < interval {
			return &DuplicateError{Reason: fmt.Sprintf(
				"attendance was marked %s ago; wait at least %s between submissions",
				gap.Round(time.Minute), interval)}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check latest record: %w", err)
	}

	return nil
}

// RecentHistory loads the user's most recent records, newest first, for the
// fraud heuristics. The limit keeps per-request latency bounded.
func RecentHistory(db *gorm.DB, username string, limit int) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := db.Where("username = ?", username).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return records, nil
}
