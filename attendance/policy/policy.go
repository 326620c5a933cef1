package policy

import (
	"fmt"
	"time"
)

// WorkHoursPolicy is the tenant-wide attendance schedule. Start/Finish are
// "HH:MM" strings in the tenant's local time.
type WorkHoursPolicy struct {
	Start            string        `yaml:"start"`
	Finish           string        `yaml:"finish"`
	FlexTime         time.Duration `yaml:"flexTime"`
	MinimumHours     float64       `yaml:"minimumHours"`
	Deadline         string        `yaml:"deadline"`
	HalfDayAfterDead bool          `yaml:"halfDayAfterDeadline"`
	Timezone         string        `yaml:"timezone"`
}

// OfficeSite is a registered office with a circular geofence.
type OfficeSite struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Radius    float64 `yaml:"radius"` // metres
	Timezone  string  `yaml:"timezone"`
}

// FraudThresholds controls the advisory heuristics. The defaults reflect the
// behaviour the heuristics were tuned against; tenants may override them.
type FraudThresholds struct {
	LocationDrift      float64       `yaml:"locationDrift"` // metres
	LocationWindowDays int           `yaml:"locationWindowDays"`
	LocationSamples    int           `yaml:"locationSamples"`
	TimeDrift          time.Duration `yaml:"timeDrift"`
	TimeWindowDays     int           `yaml:"timeWindowDays"`
	RapidResubmission  time.Duration `yaml:"rapidResubmission"`
}

// Submission admission limits.
type Limits struct {
	MaxTimeGap          time.Duration `yaml:"maxTimeGap"`
	MaxLocationAccuracy float64       `yaml:"maxLocationAccuracy"` // metres
	DuplicateInterval   time.Duration `yaml:"duplicateInterval"`
}

// TenantPolicy bundles everything the engine needs for one tenant.
type TenantPolicy struct {
	WorkHours WorkHoursPolicy `yaml:"workHours"`
	Sites     []OfficeSite    `yaml:"sites"`
	Fraud     FraudThresholds `yaml:"fraud"`
	Limits    Limits          `yaml:"limits"`
}

func DefaultWorkHours() WorkHoursPolicy {
	return WorkHoursPolicy{
		Start:        "09:00",
		Finish:       "18:00",
		FlexTime:     30 * time.Minute,
		MinimumHours: 8,
		Deadline:     "10:00",
		Timezone:     "UTC",
	}
}

func DefaultFraudThresholds() FraudThresholds {
	return FraudThresholds{
		LocationDrift:      5000,
		LocationWindowDays: 7,
		LocationSamples:    20,
		TimeDrift:          2 * time.Hour,
		TimeWindowDays:     30,
		RapidResubmission:  5 * time.Minute,
	}
}

func DefaultLimits() Limits {
	return Limits{
		MaxTimeGap:          5 * time.Minute,
		MaxLocationAccuracy: 200,
		DuplicateInterval:   time.Hour,
	}
}

func Default() TenantPolicy {
	return TenantPolicy{
		WorkHours: DefaultWorkHours(),
		Fraud:     DefaultFraudThresholds(),
		Limits:    DefaultLimits(),
	}
}

// Location returns the tenant's time.Location, falling back to UTC when the
// zone name is missing or unknown.
func (p WorkHoursPolicy) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Normalize fills unset fields of a tenant override from the defaults, so a
// partial YAML entry never zeroes out a limit.
func (p TenantPolicy) Normalize() TenantPolicy {
	def := Default()

	if p.WorkHours.Start == "" {
		p.WorkHours.Start = def.WorkHours.Start
	}
	if p.WorkHours.Finish == "" {
		p.WorkHours.Finish = def.WorkHours.Finish
	}
	if p.WorkHours.FlexTime == 0 {
		p.WorkHours.FlexTime = def.WorkHours.FlexTime
	}
	if p.WorkHours.MinimumHours == 0 {
		p.WorkHours.MinimumHours = def.WorkHours.MinimumHours
	}
	if p.WorkHours.Deadline == "" {
		p.WorkHours.Deadline = def.WorkHours.Deadline
	}
	if p.WorkHours.Timezone == "" {
		p.WorkHours.Timezone = def.WorkHours.Timezone
	}

	if p.Fraud.LocationDrift == 0 {
		p.Fraud.LocationDrift = def.Fraud.LocationDrift
	}
	if p.Fraud.LocationWindowDays == 0 {
		p.Fraud.LocationWindowDays = def.Fraud.LocationWindowDays
	}
	if p.Fraud.LocationSamples == 0 {
		p.Fraud.LocationSamples = def.Fraud.LocationSamples
	}
	if p.Fraud.TimeDrift == 0 {
		p.Fraud.TimeDrift = def.Fraud.TimeDrift
	}
	if p.Fraud.TimeWindowDays == 0 {
		p.Fraud.TimeWindowDays = def.Fraud.TimeWindowDays
	}
	if p.Fraud.RapidResubmission == 0 {
		p.Fraud.RapidResubmission = def.Fraud.RapidResubmission
	}

	if p.Limits.MaxTimeGap == 0 {
		p.Limits.MaxTimeGap = def.Limits.MaxTimeGap
	}
	if p.Limits.MaxLocationAccuracy == 0 {
		p.Limits.MaxLocationAccuracy = def.Limits.MaxLocationAccuracy
	}
	if p.Limits.DuplicateInterval == 0 {
		p.Limits.DuplicateInterval = def.Limits.DuplicateInterval
	}

	return p
}

// Validate checks the time strings parse so a bad tenant entry fails at load
// time rather than on the first submission.
func (p TenantPolicy) Validate() error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"workHours.start", p.WorkHours.Start},
		{"workHours.finish", p.WorkHours.Finish},
		{"workHours.deadline", p.WorkHours.Deadline},
	} {
		if _, err := time.Parse("15:04", field.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", field.name, field.value, err)
		}
	}
	for _, s := range p.Sites {
		if s.Name == "" {
			return fmt.Errorf("site with empty name")
		}
		if s.Radius <= 0 {
			return fmt.Errorf("site %s: radius must be positive", s.Name)
		}
	}
	return nil
}
