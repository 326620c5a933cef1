package core

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/attendance/policy"
)

// Engine runs the validation pipeline for one tenant. Policy is injected per
// request; nothing here is process-global. Clock defaults to time.Now and is
// swappable for tests.
type Engine struct {
	Policy policy.TenantPolicy
	Clock  func() time.Time
	Hooks  []PostCommitHook
}

func NewEngine(pol policy.TenantPolicy, hooks ...PostCommitHook) *Engine {
	return &Engine{
		Policy: pol,
		Clock:  time.Now,
		Hooks:  hooks,
	}
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// Mark runs Validator -> Duplicate Guard -> Geofence -> persist, then fires
// the post-commit hooks. Once the insert succeeds the record is returned even
// if every hook fails.
func (e *Engine) Mark(db *gorm.DB, sub Submission) (*model.AttendanceRecord, error) {
	now := e.now()
	pol := e.Policy
	loc := pol.WorkHours.Location()

	if err := ValidateSubmission(sub, pol, now); err != nil {
		return nil, err
	}

	local := now.In(loc)
	date := local.Format("2006-01-02")

	if err := CheckDuplicate(db, sub.Username, date, now, pol.Limits.DuplicateInterval); err != nil {
		return nil, err
	}

	var site *policy.OfficeSite
	if sub.WorkMode == WorkModeOffice && sub.Location != nil && len(pol.Sites) > 0 {
		matched, err := CheckLocation(*sub.Location, pol.Sites)
		if err != nil {
			return nil, err
		}
		site = matched
	}

	record, err := e.buildRecord(sub, site, local)
	if err != nil {
		return nil, err
	}

	// The read-then-write duplicate check is not atomic under concurrent
	// submissions; the unique (username, date) index is the backstop. A lost
	// race shows up as zero affected rows.
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "date"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create attendance record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &DuplicateError{Reason: "attendance already marked today"}
	}

	e.runHooks(db, record, sub, now)

	return record, nil
}

func (e *Engine) buildRecord(sub Submission, site *policy.OfficeSite, local time.Time) (*model.AttendanceRecord, error) {
	clockInMinute := local.Hour()*60 + local.Minute()
	clockIn := FormatClock(clockInMinute)

	flags, err := ComputeScheduleFlags(clockInMinute, e.Policy.WorkHours)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	status := model.StatusPresent
	if e.Policy.WorkHours.HalfDayAfterDead {
		past, err := IsPastDeadline(clockInMinute, e.Policy.WorkHours)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		if past {
			status = model.StatusHalfDay
		}
	}

	record := &model.AttendanceRecord{
		ID:       uuid.NewString(),
		Username: sub.Username,
		Date:     local.Format("2006-01-02"),
		WorkMode: sub.WorkMode,
		Status:   status,
		ClockIn:  clockIn,

		IsLateArrival:  flags.IsLateArrival,
		IsEarlyArrival: flags.IsEarlyArrival,
		IsFlexTime:     flags.IsFlexTime,

		// Fraud heuristics are advisory; they annotate the side channel but
		// never fail the record.
		FraudCheckPassed: true,

		Notes:    sub.Notes,
		DeviceID: sub.DeviceID,
	}

	if sub.Location != nil {
		lat, lon, acc := sub.Location.Latitude, sub.Location.Longitude, sub.Location.Accuracy
		record.Latitude = &lat
		record.Longitude = &lon
		record.Accuracy = &acc
	}
	if site != nil {
		name := site.Name
		record.SiteName = &name
		record.LocationValidated = true
	}

	return record, nil
}

// Checkout closes the day's open record and computes total hours. A record
// never transitions back from closed; corrections go through an explicit
// administrative path.
func (e *Engine) Checkout(db *gorm.DB, username string) (*model.AttendanceRecord, error) {
	now := e.now()
	local := now.In(e.Policy.WorkHours.Location())
	date := local.Format("2006-01-02")

	var record model.AttendanceRecord
	err := db.Where("username = ? AND date = ?", username, date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Overnight shifts clock out after midnight: fall back to the
		// previous day's still-open record.
		yesterday := local.AddDate(0, 0, -1).Format("2006-01-02")
		err = db.Where("username = ? AND date = ? AND clock_out IS NULL", username, yesterday).
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Reason: "no attendance record found for today; clock in first"}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record: %w", err)
	}

	if record.Closed() {
		return nil, &AlreadyClosedError{Reason: fmt.Sprintf(
			"already checked out at %s", *record.ClockOut)}
	}

	clockOut := FormatClock(local.Hour()*60 + local.Minute())
	totalHours, err := CalculateWorkHours(record.ClockIn, clockOut)
	if err != nil {
		return nil, fmt.Errorf("failed to compute work hours: %w", err)
	}

	updates := map[string]any{
		"clock_out":   clockOut,
		"total_hours": totalHours,
	}
	if err := db.Model(&record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to close record: %w", err)
	}

	record.ClockOut = &clockOut
	record.TotalHours = &totalHours

	// Best effort; a failed counter never fails the checkout.
	if hours, err := WorkHoursToFloat(totalHours); err == nil {
		if err := db.Model(&model.UserStats{}).
			Where("username = ?", username).
			Update("total_hours", gorm.Expr("total_hours + ?", hours)).Error; err != nil {
			log.Printf("failed to update hour stats for %s: %v", username, err)
		}
	}

	return &record, nil
}
