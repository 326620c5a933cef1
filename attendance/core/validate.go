package core

import (
	"fmt"
	"strings"
	"time"

	"veritime.com/veritime/attendance/policy"
)

// WorkMode is how the user is working for the day.
const (
	WorkModeOffice = "office"
	WorkModeRemote = "remote"
)

// Submission is the ephemeral input to the engine. It is consumed to build
// an AttendanceRecord, never persisted as-is.
type Submission struct {
	Username  string
	TenantID  string
	WorkMode  string
	Location  *Geolocation
	Notes     string
	Timestamp time.Time
	DeviceID  string
}

// ValidateSubmission runs the hard admission checks in order, short-circuiting
// on the first failure. It is a pure function of the submission, the tenant
// policy and the supplied current time.
func ValidateSubmission(sub Submission, pol policy.TenantPolicy, now time.Time) error {
	if strings.TrimSpace(sub.Username) == "" {
		return &ValidationError{Reason: "username is required"}
	}

	if sub.WorkMode != WorkModeOffice && sub.WorkMode != WorkModeRemote {
		return &ValidationError{Reason: fmt.Sprintf("invalid work mode %q: must be office or remote", sub.WorkMode)}
	}

	if !sub.Timestamp.IsZero() {
		gap := now.Sub(sub.Timestamp)
		if gap < 0 {
			gap = -gap
		}
		if gap > pol.Limits.MaxTimeGap {
			return &ValidationError{Reason: fmt.Sprintf(
				"submission time differs from server time by more than %s", pol.Limits.MaxTimeGap)}
		}
	}

	// Admission window is a hard boundary: outside start-flex .. finish+flex
	// the submission is rejected, not flagged.
	local := now.In(pol.WorkHours.Location())
	minute := local.Hour()*60 + local.Minute()
	within, err := IsWithinWorkHours(minute, pol.WorkHours)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	if !within {
		return &ValidationError{Reason: fmt.Sprintf(
			"attendance can only be marked between %s and %s (± %s flex)",
			pol.WorkHours.Start, pol.WorkHours.Finish, pol.WorkHours.FlexTime)}
	}

	if sub.WorkMode == WorkModeOffice && sub.Location != nil {
		if sub.Location.Accuracy > pol.Limits.MaxLocationAccuracy {
			return &ValidationError{Reason: fmt.Sprintf(
				"location accuracy %.0fm is too low for office validation (max %.0fm)",
				sub.Location.Accuracy, pol.Limits.MaxLocationAccuracy)}
		}
	}

	return nil
}
