package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veritime.com/veritime/attendance/policy"
)

// 09:05 on a Wednesday, inside the default 09:00-18:00 window.
var testNow = time.Date(2024, 6, 12, 9, 5, 0, 0, time.UTC)

func validSubmission() Submission {
	return Submission{
		Username:  "jdoe",
		TenantID:  "acme",
		WorkMode:  WorkModeOffice,
		Timestamp: testNow,
		Location:  &Geolocation{Latitude: -27.4698, Longitude: 153.0251, Accuracy: 15},
	}
}

func TestValidateSubmission(t *testing.T) {
	pol := policy.Default()

	tests := []struct {
		name    string
		mutate  func(*Submission)
		wantErr string
	}{
		{
			name:   "Valid office submission",
			mutate: func(s *Submission) {},
		},
		{
			name:   "Valid remote submission without location",
			mutate: func(s *Submission) { s.WorkMode = WorkModeRemote; s.Location = nil },
		},
		{
			name:    "Empty username",
			mutate:  func(s *Submission) { s.Username = "   " },
			wantErr: "username is required",
		},
		{
			name:    "Invalid work mode",
			mutate:  func(s *Submission) { s.WorkMode = "hybrid" },
			wantErr: "invalid work mode",
		},
		{
			name:    "Stale client timestamp",
			mutate:  func(s *Submission) { s.Timestamp = testNow.Add(-6 * time.Minute) },
			wantErr: "differs from server time",
		},
		{
			name:    "Future client timestamp",
			mutate:  func(s *Submission) { s.Timestamp = testNow.Add(6 * time.Minute) },
			wantErr: "differs from server time",
		},
		{
			name:   "Missing timestamp is tolerated",
			mutate: func(s *Submission) { s.Timestamp = time.Time{} },
		},
		{
			name:    "Low accuracy office reading",
			mutate:  func(s *Submission) { s.Location.Accuracy = 350 },
			wantErr: "accuracy",
		},
		{
			name:   "Low accuracy is fine for remote",
			mutate: func(s *Submission) { s.WorkMode = WorkModeRemote; s.Location.Accuracy = 350 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			err := ValidateSubmission(sub, pol, testNow)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.IsType(t, &ValidationError{}, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSubmissionOutsideWindow(t *testing.T) {
	pol := policy.Default()

	// 08:29 is one minute before the 08:30 admission boundary.
	early := time.Date(2024, 6, 12, 8, 29, 0, 0, time.UTC)
	sub := validSubmission()
	sub.Timestamp = early

	err := ValidateSubmission(sub, pol, early)
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
	assert.Contains(t, err.Error(), "can only be marked")

	// 18:31 is one minute past finish + flex.
	late := time.Date(2024, 6, 12, 18, 31, 0, 0, time.UTC)
	sub.Timestamp = late
	err = ValidateSubmission(sub, pol, late)
	assert.Error(t, err)
}

func TestValidateSubmissionTenantTimezone(t *testing.T) {
	pol := policy.Default()
	pol.WorkHours.Timezone = "Australia/Brisbane" // UTC+10, no DST

	// 23:05 UTC is 09:05 next day in Brisbane: inside the window.
	now := time.Date(2024, 6, 11, 23, 5, 0, 0, time.UTC)
	sub := validSubmission()
	sub.Timestamp = now

	assert.NoError(t, ValidateSubmission(sub, pol, now))
}
