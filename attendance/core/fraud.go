package core

import (
	"time"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/attendance/policy"
)

// RiskAssessment is the advisory output of the fraud heuristics. It is logged
// to the suspicious-activity side channel and never blocks a record.
type RiskAssessment struct {
	Suspicious bool
	Reasons    []string
	RiskLevel  string
}

// AssessRisk evaluates each heuristic independently against the user's
// history and accumulates the triggered reasons. History should be the user's
// recent records ordered newest first; the thresholds bound how much of it is
// consulted.
func AssessRisk(sub Submission, history []model.AttendanceRecord, th policy.FraudThresholds, now time.Time, loc *time.Location) RiskAssessment {
	var reasons []string

	if reason := checkLocationDrift(sub, history, th, now); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := checkTimeDrift(history, th, now, loc); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := checkRapidResubmission(history, th, now); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := checkWeekend(now, loc); reason != "" {
		reasons = append(reasons, reason)
	}

	return RiskAssessment{
		Suspicious: len(reasons) > 0,
		Reasons:    reasons,
		RiskLevel:  riskLevel(len(reasons)),
	}
}

func riskLevel(triggered int) string {
	switch {
	case triggered >= 3:
		return model.RiskHigh
	case triggered >= 1:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// checkLocationDrift flags when the submission is far from every
// location-bearing record in the recent window.
func checkLocationDrift(sub Submission, history []model.AttendanceRecord, th policy.FraudThresholds, now time.Time) string {
	if sub.Location == nil {
		return ""
	}

	cutoff := now.AddDate(0, 0, -th.LocationWindowDays)
	sampled := 0
	maxDistance := 0.0

	for _, rec := range history {
		if sampled >= th.LocationSamples {
			break
		}
		if rec.Latitude == nil || rec.Longitude == nil {
			continue
		}
		if rec.CreatedAt.Before(cutoff) {
			continue
		}

		d := HaversineDistance(sub.Location.Latitude, sub.Location.Longitude, *rec.Latitude, *rec.Longitude)
		if d > maxDistance {
			maxDistance = d
		}
		sampled++
	}

	if sampled > 0 && maxDistance > th.LocationDrift {
		return "unusual location pattern"
	}
	return ""
}

// checkTimeDrift flags when the current clock-in hour differs from the mean
// clock-in of the recent window by more than the threshold.
func checkTimeDrift(history []model.AttendanceRecord, th policy.FraudThresholds, now time.Time, loc *time.Location) string {
	cutoff := now.AddDate(0, 0, -th.TimeWindowDays)

	total := 0
	count := 0
	for _, rec := range history {
		if rec.CreatedAt.Before(cutoff) {
			continue
		}
		minute, err := ParseClock(rec.ClockIn)
		if err != nil {
			continue
		}
		total += minute
		count++
	}
	if count == 0 {
		return ""
	}

	mean := total / count
	local := now.In(loc)
	current := local.Hour()*60 + local.Minute()

	diff := current - mean
	if diff < 0 {
		diff = -diff
	}
	if time.Duration(diff)*time.Minute > th.TimeDrift {
		return "unusual time pattern"
	}
	return ""
}

// checkRapidResubmission flags when the most recent record was created only
// minutes ago, regardless of what the duplicate guard decided.
func checkRapidResubmission(history []model.AttendanceRecord, th policy.FraudThresholds, now time.Time) string {
	if len(history) == 0 {
		return ""
	}
	last := history[0]
	if now.Sub(last.CreatedAt) < th.RapidResubmission {
		return "rapid resubmission"
	}
	return ""
}

func checkWeekend(now time.Time, loc *time.Location) string {
	switch now.In(loc).Weekday() {
	case time.Saturday, time.Sunday:
		return "weekend attendance"
	}
	return ""
}
