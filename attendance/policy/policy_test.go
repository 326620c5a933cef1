package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	p := TenantPolicy{
		WorkHours: WorkHoursPolicy{Start: "08:00"},
		Fraud:     FraudThresholds{LocationDrift: 2000},
	}.Normalize()

	assert.Equal(t, "08:00", p.WorkHours.Start)
	assert.Equal(t, "18:00", p.WorkHours.Finish)
	assert.Equal(t, 30*time.Minute, p.WorkHours.FlexTime)
	assert.Equal(t, float64(2000), p.Fraud.LocationDrift)
	assert.Equal(t, 7, p.Fraud.LocationWindowDays)
	assert.Equal(t, 5*time.Minute, p.Limits.MaxTimeGap)
	assert.Equal(t, time.Hour, p.Limits.DuplicateInterval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TenantPolicy)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(p *TenantPolicy) {},
		},
		{
			name:    "bad start time",
			mutate:  func(p *TenantPolicy) { p.WorkHours.Start = "9am" },
			wantErr: "workHours.start",
		},
		{
			name:    "bad deadline",
			mutate:  func(p *TenantPolicy) { p.WorkHours.Deadline = "25:00" },
			wantErr: "workHours.deadline",
		},
		{
			name: "site without name",
			mutate: func(p *TenantPolicy) {
				p.Sites = []OfficeSite{{Latitude: -27.5, Longitude: 153.0, Radius: 100}}
			},
			wantErr: "empty name",
		},
		{
			name: "site with zero radius",
			mutate: func(p *TenantPolicy) {
				p.Sites = []OfficeSite{{Name: "HQ", Latitude: -27.5, Longitude: 153.0}}
			},
			wantErr: "radius must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, WorkHoursPolicy{}.Location())
	assert.Equal(t, time.UTC, WorkHoursPolicy{Timezone: "Not/AZone"}.Location())

	loc := WorkHoursPolicy{Timezone: "Australia/Brisbane"}.Location()
	assert.Equal(t, "Australia/Brisbane", loc.String())
}

func TestTenantOverrideYAML(t *testing.T) {
	raw := `
workHours:
  start: "07:30"
  timezone: Australia/Brisbane
sites:
  - name: HQ
    latitude: -27.4698
    longitude: 153.0251
    radius: 150
limits:
  maxLocationAccuracy: 50
`
	var p TenantPolicy
	assert.NoError(t, yaml.Unmarshal([]byte(raw), &p))

	p = p.Normalize()
	assert.NoError(t, p.Validate())

	assert.Equal(t, "07:30", p.WorkHours.Start)
	assert.Equal(t, "10:00", p.WorkHours.Deadline)
	assert.Equal(t, float64(50), p.Limits.MaxLocationAccuracy)
	assert.Len(t, p.Sites, 1)
	assert.Equal(t, "HQ", p.Sites[0].Name)
}
