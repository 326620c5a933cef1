package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veritime.com/veritime/attendance/model"
)

func strptr(s string) *string { return &s }

func TestBuildMonthly(t *testing.T) {
	records := []model.AttendanceRecord{
		{
			Date:       "2024-06-12",
			Username:   "jdoe",
			WorkMode:   "office",
			Status:     model.StatusPresent,
			ClockIn:    "09:00",
			ClockOut:   strptr("18:30"),
			TotalHours: strptr("9:30"),
			SiteName:   strptr("Main Office"),
		},
		{
			Date:     "2024-06-11",
			Username: "asmith",
			WorkMode: "remote",
			Status:   model.StatusPresent,
			ClockIn:  "09:40",

			IsLateArrival: true,
		},
	}

	f, err := BuildMonthly("2024-06", records)
	assert.NoError(t, err)

	// Rows are sorted by date: asmith's 06-11 record first.
	got, err := f.GetCellValue(sheetName, "A2")
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-11", got)

	got, err = f.GetCellValue(sheetName, "B3")
	assert.NoError(t, err)
	assert.Equal(t, "jdoe", got)

	got, err = f.GetCellValue(sheetName, "G3")
	assert.NoError(t, err)
	assert.Equal(t, "9:30", got)

	// Summary header two rows under the detail block.
	got, err = f.GetCellValue(sheetName, "A5")
	assert.NoError(t, err)
	assert.Equal(t, "Summary 2024-06", got)

	// Users sorted alphabetically in the summary.
	got, err = f.GetCellValue(sheetName, "A6")
	assert.NoError(t, err)
	assert.Equal(t, "asmith", got)

	got, err = f.GetCellValue(sheetName, "C7")
	assert.NoError(t, err)
	assert.Equal(t, "9.5", got)
}

func TestBuildMonthlyEmpty(t *testing.T) {
	f, err := BuildMonthly("2024-06", nil)
	assert.NoError(t, err)

	got, err := f.GetCellValue(sheetName, "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Date", got)
}
