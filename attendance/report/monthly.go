package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"veritime.com/veritime/attendance/core"
	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/utils"
)

const sheetName = "Attendance"

// BuildMonthly renders one row per attendance record plus a per-user summary
// block, for a single "YYYY-MM" month.
func BuildMonthly(month string, records []model.AttendanceRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Date", "Username", "Mode", "Status", "Clock In", "Clock Out", "Hours", "Site", "Late"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	sorted := make([]model.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Username < sorted[j].Username
	})

	userHours := make(map[string]float64)
	userDays := make(map[string]int)

	row := 2
	for _, rec := range sorted {
		values := []any{
			rec.Date,
			rec.Username,
			rec.WorkMode,
			rec.Status,
			rec.ClockIn,
			utils.Format(rec.ClockOut),
			utils.Format(rec.TotalHours),
			utils.Format(rec.SiteName),
			utils.FormatBoolean(rec.IsLateArrival, "late", ""),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}

		userDays[rec.Username]++
		if rec.TotalHours != nil {
			if hours, err := core.WorkHoursToFloat(*rec.TotalHours); err == nil {
				userHours[rec.Username] += hours
			}
		}
		row++
	}

	// Summary block below the detail rows.
	row++
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("Summary %s", month)); err != nil {
		return nil, err
	}
	row++

	usernames := make([]string, 0, len(userDays))
	for u := range userDays {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)

	for _, u := range usernames {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), u); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), userDays[u]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), userHours[u]); err != nil {
			return nil, err
		}
		row++
	}

	return f, nil
}
