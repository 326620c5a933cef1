package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veritime.com/veritime/attendance/model"
)

func TestIntentsFor(t *testing.T) {
	t.Run("Late open record", func(t *testing.T) {
		record := &model.AttendanceRecord{
			Username:      "jdoe",
			Date:          "2024-06-12",
			ClockIn:       "09:45",
			IsLateArrival: true,
		}

		intents := IntentsFor(record)
		assert.Len(t, intents, 2)
		assert.Equal(t, "late-arrival", intents[0].Kind)
		assert.Contains(t, intents[0].Message, "09:45")
		assert.Equal(t, "checkout-reminder", intents[1].Kind)
	})

	t.Run("On-time closed record", func(t *testing.T) {
		out := "18:00"
		record := &model.AttendanceRecord{
			Username: "jdoe",
			Date:     "2024-06-12",
			ClockIn:  "09:00",
			ClockOut: &out,
		}

		assert.Empty(t, IntentsFor(record))
	})
}

func TestErrorMessages(t *testing.T) {
	dup := &DuplicateError{Reason: "attendance already marked today at 09:05"}
	assert.Contains(t, dup.Error(), "09:05")

	locErr := &LocationError{Distances: []SiteDistance{
		{Site: "Main Office", Distance: 5210},
	}}
	assert.Contains(t, locErr.Error(), "Main Office: 5210m away")
}
