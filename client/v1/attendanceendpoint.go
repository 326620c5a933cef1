package v1

import (
	"encoding/json"
	"fmt"
	"time"
)

type GeolocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

type MarkAttendanceDTO struct {
	Username  string          `json:"username"`
	WorkMode  string          `json:"workMode"` // office or remote
	Location  *GeolocationDTO `json:"location,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	DeviceID  string          `json:"deviceId,omitempty"`
}

type AttendanceRecordDTO struct {
	ID                string   `json:"id"`
	Username          string   `json:"username"`
	Date              string   `json:"date"` // yyyy-MM-dd
	WorkMode          string   `json:"workMode"`
	Status            string   `json:"status"`
	ClockIn           string   `json:"clockIn"`
	ClockOut          *string  `json:"clockOut,omitempty"`
	TotalHours        *string  `json:"totalHours,omitempty"`
	SiteName          *string  `json:"siteName,omitempty"`
	IsLateArrival     bool     `json:"isLateArrival"`
	IsEarlyArrival    bool     `json:"isEarlyArrival"`
	IsFlexTime        bool     `json:"isFlexTime"`
	LocationValidated bool     `json:"locationValidated"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

type NotificationIntentDTO struct {
	Kind     string `json:"kind"`
	Username string `json:"username"`
	Date     string `json:"date"`
	Message  string `json:"message"`
}

type MarkResultDTO struct {
	Record  AttendanceRecordDTO     `json:"record"`
	Intents []NotificationIntentDTO `json:"intents"`
}

type SearchParamsDTO struct {
	StartDate string   `json:"startDate"` // yyyy-MM-dd
	EndDate   string   `json:"endDate"`
	Usernames []string `json:"usernames,omitempty"`
	Statuses  []string `json:"statuses,omitempty"`
	LateOnly  bool     `json:"lateOnly,omitempty"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type searchEnvelope[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

func (e *AttendanceEndpoint) Mark(dto *MarkAttendanceDTO) (*MarkResultDTO, error) {
	resp, err := e.transport.Post(basePath+"/attendance", dto, nil)
	if err != nil {
		return nil, err
	}

	var result dataEnvelope[MarkResultDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (e *AttendanceEndpoint) Checkout(username string) (*AttendanceRecordDTO, error) {
	payload := map[string]string{"username": username}

	resp, err := e.transport.Post(basePath+"/attendance/checkout", payload, nil)
	if err != nil {
		return nil, err
	}

	var result dataEnvelope[AttendanceRecordDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (e *AttendanceEndpoint) Search(params *SearchParamsDTO, limit, offset int) ([]AttendanceRecordDTO, int64, error) {
	query := map[string]string{
		"limit":  fmt.Sprintf("%d", limit),
		"offset": fmt.Sprintf("%d", offset),
	}

	resp, err := e.transport.Post(basePath+"/attendance/search", params, query)
	if err != nil {
		return nil, 0, err
	}

	var result searchEnvelope[AttendanceRecordDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Pagination.Total, nil
}

func (e *AttendanceEndpoint) MonthlyReport(month string) ([]byte, error) {
	resp, err := e.transport.Get(basePath+"/reports/monthly", map[string]string{"month": month})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
