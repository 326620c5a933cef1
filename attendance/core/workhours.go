package core

import (
	"fmt"
	"time"

	"veritime.com/veritime/attendance/policy"
)

const minutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CalculateWorkHours returns the duration between two "HH:MM" clock times,
// formatted "H:MM" with no zero-padded hour. A clock-out earlier than the
// clock-in is treated as an overnight shift, never a negative duration.
func CalculateWorkHours(clockIn, clockOut string) (string, error) {
	in, err := ParseClock(clockIn)
	if err != nil {
		return "", err
	}
	out, err := ParseClock(clockOut)
	if err != nil {
		return "", err
	}

	minutes := out - in
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60), nil
}

// WorkHoursToFloat converts an "H:MM" duration to fractional hours.
func WorkHoursToFloat(hours string) (float64, error) {
	var h, m int
	if _, err := fmt.Sscanf(hours, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", hours, err)
	}
	return float64(h) + float64(m)/60, nil
}

// ScheduleFlags describes how a clock-in sits against the tenant schedule.
type ScheduleFlags struct {
	IsLateArrival  bool
	IsEarlyArrival bool
	IsFlexTime     bool
}

// ComputeScheduleFlags classifies a clock-in minute against the policy's
// nominal start. Arrivals inside the flex allowance on either side count as
// flex time, not late/early.
func ComputeScheduleFlags(clockInMinute int, wh policy.WorkHoursPolicy) (ScheduleFlags, error) {
	start, err := ParseClock(wh.Start)
	if err != nil {
		return ScheduleFlags{}, err
	}

	flex := int(wh.FlexTime.Minutes())
	diff := clockInMinute - start

	flags := ScheduleFlags{}
	switch {
	case diff > flex:
		flags.IsLateArrival = true
	case diff < -flex:
		flags.IsEarlyArrival = true
	case diff != 0:
		flags.IsFlexTime = true
	}
	return flags, nil
}

// IsOvernight reports whether the schedule wraps past midnight, e.g. a
// 22:00-06:00 shift.
func IsOvernight(wh policy.WorkHoursPolicy) (bool, error) {
	start, err := ParseClock(wh.Start)
	if err != nil {
		return false, err
	}
	finish, err := ParseClock(wh.Finish)
	if err != nil {
		return false, err
	}
	return finish < start, nil
}

// IsWithinWorkHours reports whether a minute-of-day falls inside
// [start - flex, finish + flex]. Overnight schedules (finish before start)
// wrap across midnight.
func IsWithinWorkHours(minute int, wh policy.WorkHoursPolicy) (bool, error) {
	start, err := ParseClock(wh.Start)
	if err != nil {
		return false, err
	}
	finish, err := ParseClock(wh.Finish)
	if err != nil {
		return false, err
	}

	flex := int(wh.FlexTime.Minutes())
	lo := start - flex
	hi := finish + flex

	if finish < start {
		// overnight window, e.g. 22:00-06:00
		return minute >= lo || minute <= (hi%minutesPerDay), nil
	}
	return minute >= lo && minute <= hi, nil
}

// IsEarlyDeparture reports whether a clock-out happened before the nominal
// finish less the flex allowance.
func IsEarlyDeparture(clockOutMinute int, wh policy.WorkHoursPolicy) (bool, error) {
	finish, err := ParseClock(wh.Finish)
	if err != nil {
		return false, err
	}
	return clockOutMinute < finish-int(wh.FlexTime.Minutes()), nil
}

// IsPastDeadline reports whether a clock-in is later than the tenant's
// attendance deadline; used for the half-day status downgrade.
func IsPastDeadline(clockInMinute int, wh policy.WorkHoursPolicy) (bool, error) {
	deadline, err := ParseClock(wh.Deadline)
	if err != nil {
		return false, err
	}
	return clockInMinute > deadline, nil
}
