package handlers

import (
	"time"

	"veritime.com/veritime/attendance/core"
)

// MarkAttendanceDTO is the submission body. The username normally comes from
// the token claims; the field here is for device integrations that act on
// behalf of a user.
type MarkAttendanceDTO struct {
	Username  string          `json:"username" binding:"required"`
	WorkMode  string          `json:"workMode" binding:"required,oneof=office remote"`
	Location  *GeolocationDTO `json:"location,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	DeviceID  string          `json:"deviceId,omitempty"`
}

type GeolocationDTO struct {
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
	Accuracy  float64 `json:"accuracy" binding:"min=0"`
}

func (dto *MarkAttendanceDTO) ToSubmission(tenant string) core.Submission {
	sub := core.Submission{
		Username: dto.Username,
		TenantID: tenant,
		WorkMode: dto.WorkMode,
		Notes:    dto.Notes,
		DeviceID: dto.DeviceID,
	}
	if dto.Timestamp != nil {
		sub.Timestamp = *dto.Timestamp
	}
	if dto.Location != nil {
		sub.Location = &core.Geolocation{
			Latitude:  dto.Location.Latitude,
			Longitude: dto.Location.Longitude,
			Accuracy:  dto.Location.Accuracy,
		}
	}
	return sub
}

type CheckoutDTO struct {
	Username string `json:"username" binding:"required"`
}

type ResolveSuspiciousDTO struct {
	ResolvedBy string `json:"resolvedBy" binding:"required"`
}
