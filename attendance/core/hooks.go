package core

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"veritime.com/veritime/attendance/model"
)

// PostCommitHook runs after the record is durably created. Hooks are
// best-effort: a returned error is logged and swallowed, never surfaced to
// the caller or rolled back into the record.
type PostCommitHook func(db *gorm.DB, record *model.AttendanceRecord, sub Submission, now time.Time) error

func (e *Engine) runHooks(db *gorm.DB, record *model.AttendanceRecord, sub Submission, now time.Time) {
	for _, hook := range e.Hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("post-commit hook panicked: %v", r)
				}
			}()
			if err := hook(db, record, sub, now); err != nil {
				log.Printf("post-commit hook failed for %s: %v", record.Username, err)
			}
		}()
	}
}

// Alerter is the out-of-band channel for suspicious-activity notifications.
// infrastructure/communication.Slack satisfies it.
type Alerter interface {
	Info(message string) error
	Error(message string) error
}

// FraudHook scores the submission against the user's history and writes a
// SuspiciousActivity entry when any heuristic fires. High-risk entries also
// go to the alert channel when one is configured.
func (e *Engine) FraudHook(alerter Alerter) PostCommitHook {
	return func(db *gorm.DB, record *model.AttendanceRecord, sub Submission, now time.Time) error {
		limit := e.Policy.Fraud.LocationSamples
		if e.Policy.Fraud.TimeWindowDays > limit {
			limit = e.Policy.Fraud.TimeWindowDays
		}

		history, err := RecentHistory(db, sub.Username, limit+1)
		if err != nil {
			return err
		}

		// Exclude the record we just created from its own history.
		trimmed := history[:0]
		for _, h := range history {
			if h.ID != record.ID {
				trimmed = append(trimmed, h)
			}
		}

		assessment := AssessRisk(sub, trimmed, e.Policy.Fraud, now, e.Policy.WorkHours.Location())
		if !assessment.Suspicious {
			return nil
		}

		entry := model.SuspiciousActivity{
			ID:        uuid.NewString(),
			Username:  sub.Username,
			RecordID:  record.ID,
			Date:      record.Date,
			Reasons:   strings.Join(assessment.Reasons, "; "),
			RiskLevel: assessment.RiskLevel,
		}
		if err := db.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to log suspicious activity: %w", err)
		}

		if alerter != nil && assessment.RiskLevel == model.RiskHigh {
			msg := fmt.Sprintf("high-risk attendance: %s on %s (%s)",
				sub.Username, record.Date, entry.Reasons)
			if err := alerter.Error(msg); err != nil {
				return fmt.Errorf("failed to send alert: %w", err)
			}
		}

		return nil
	}
}

// StatsHook bumps the user's running counters.
func StatsHook() PostCommitHook {
	return func(db *gorm.DB, record *model.AttendanceRecord, sub Submission, now time.Time) error {
		var stats model.UserStats
		if err := db.Where("username = ?", record.Username).
			FirstOrCreate(&stats, model.UserStats{Username: record.Username}).Error; err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		updates := map[string]any{}
		switch record.Status {
		case model.StatusPresent:
			updates["days_present"] = gorm.Expr("days_present + 1")
		case model.StatusHalfDay:
			updates["days_half"] = gorm.Expr("days_half + 1")
		}
		if record.IsLateArrival {
			updates["late_count"] = gorm.Expr("late_count + 1")
		}
		if len(updates) == 0 {
			return nil
		}

		return db.Model(&model.UserStats{}).
			Where("username = ?", record.Username).
			Updates(updates).Error
	}
}

// NotificationIntent is what the (external) dispatcher acts on. The engine
// only produces the data.
type NotificationIntent struct {
	Kind     string `json:"kind"` // late-arrival | checkout-reminder
	Username string `json:"username"`
	Date     string `json:"date"`
	Message  string `json:"message"`
}

// IntentsFor derives the notification-worthy events from a freshly created
// record.
func IntentsFor(record *model.AttendanceRecord) []NotificationIntent {
	var intents []NotificationIntent
	if record.IsLateArrival {
		intents = append(intents, NotificationIntent{
			Kind:     "late-arrival",
			Username: record.Username,
			Date:     record.Date,
			Message:  fmt.Sprintf("%s clocked in late at %s", record.Username, record.ClockIn),
		})
	}
	if !record.Closed() {
		intents = append(intents, NotificationIntent{
			Kind:     "checkout-reminder",
			Username: record.Username,
			Date:     record.Date,
			Message:  "remember to check out at the end of your shift",
		})
	}
	return intents
}
