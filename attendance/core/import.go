package core

import (
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/attendance/policy"
	"veritime.com/veritime/utils"
)

// Punch is one row of a device CSV export.
type Punch struct {
	Username  string
	Timestamp time.Time
	Date      string
	DeviceID  string
}

// PunchGroup is all of one user's punches for one day, sorted by time. The
// first punch becomes the clock-in, the last the clock-out.
type PunchGroup struct {
	Username string
	Date     string
	Punches  []Punch
}

func (g *PunchGroup) First() Punch { return g.Punches[0] }
func (g *PunchGroup) Last() Punch  { return g.Punches[len(g.Punches)-1] }

// ParsePunchCSV reads a device export with a header row and columns
// username,timestamp,device_id. Timestamps are RFC3339; dates are derived in
// the tenant's zone.
func ParsePunchCSV(r io.Reader, loc *time.Location) ([]Punch, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var punches []Punch
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i, len(row))
		}

		timestamp, err := utils.ParseISOTime(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}

		local := timestamp.In(loc)
		punches = append(punches, Punch{
			Username:  row[0],
			Timestamp: local,
			Date:      local.Format("2006-01-02"),
			DeviceID:  row[2],
		})
	}

	return punches, nil
}

// GroupPunches groups punches by user and day, sorted by timestamp within
// each group.
func GroupPunches(punches []Punch) []*PunchGroup {
	var groups []*PunchGroup

	dategroups := utils.GroupBy(punches, func(p Punch) string { return p.Date })
	for date, recs := range dategroups {
		usergroups := utils.GroupBy(recs, func(p Punch) string { return p.Username })
		for username, ps := range usergroups {
			sort.Slice(ps, func(i, j int) bool {
				return ps[i].Timestamp.Before(ps[j].Timestamp)
			})
			groups = append(groups, &PunchGroup{
				Username: username,
				Date:     date,
				Punches:  ps,
			})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Date != groups[j].Date {
			return groups[i].Date < groups[j].Date
		}
		return groups[i].Username < groups[j].Username
	})
	return groups
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Created  int      `json:"created"`
	Closed   int      `json:"closed"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportPunches runs each group through the normal validation pipeline. The
// engine clock is pinned to the punch timestamps so historical punches pass
// the time-gap check; everything else (duplicate guard, window, heuristics)
// applies as if the punch were live. Rejected groups are reported, never
// partially persisted.
func ImportPunches(db *gorm.DB, pol policy.TenantPolicy, groups []*PunchGroup, hooks ...PostCommitHook) ImportResult {
	result := ImportResult{}

	overnight, _ := IsOvernight(pol.WorkHours)
	finishMin, _ := ParseClock(pol.WorkHours.Finish)

	for _, g := range groups {
		raw := utils.Map(g.Punches, func(p Punch) model.PunchRecord {
			return model.PunchRecord{
				ID:            uuid.NewString(),
				Username:      p.Username,
				Date:          p.Date,
				Timestamp:     p.Timestamp.Format(time.RFC3339),
				DeviceID:      p.DeviceID,
				ProcessStatus: "pending",
			}
		})
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&raw).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", g.Username, g.Date, err))
			continue
		}

		engine := NewEngine(pol, hooks...)
		punches := g.Punches
		first := punches[0]

		// Day grouping splits an overnight shift's pair across two dates.
		// A first punch at or before the schedule finish closes yesterday's
		// open record instead of opening a new day.
		if overnight {
			closing := first
			firstMin := closing.Timestamp.Hour()*60 + closing.Timestamp.Minute()
			if firstMin <= finishMin {
				engine.Clock = func() time.Time { return closing.Timestamp }
				if _, err := engine.Checkout(db, g.Username); err == nil {
					result.Closed++
					punches = punches[1:]
					if len(punches) == 0 {
						markPunchStatus(db, raw, "processed")
						continue
					}
					first = punches[0]
				}
			}
		}

		start := first
		engine.Clock = func() time.Time { return start.Timestamp }

		sub := Submission{
			Username:  g.Username,
			WorkMode:  WorkModeOffice,
			Timestamp: first.Timestamp,
			DeviceID:  first.DeviceID,
		}

		if _, err := engine.Mark(db, sub); err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", g.Username, g.Date, err))
			markPunchStatus(db, raw, "error")
			continue
		}
		result.Created++

		if len(punches) > 1 {
			last := punches[len(punches)-1]
			engine.Clock = func() time.Time { return last.Timestamp }
			if _, err := engine.Checkout(db, g.Username); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s %s checkout: %v", g.Username, g.Date, err))
			} else {
				result.Closed++
			}
		}

		markPunchStatus(db, raw, "processed")
	}

	return result
}

func markPunchStatus(db *gorm.DB, punches []model.PunchRecord, status string) {
	ids := utils.Map(punches, func(p model.PunchRecord) string { return p.ID })
	if err := db.Model(&model.PunchRecord{}).
		Where("id IN ?", ids).
		Update("process_status", status).Error; err != nil {
		log.Printf("failed to update punch status: %v", err)
	}
}
