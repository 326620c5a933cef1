package model

import "time"

// Attendance status values.
const (
	StatusPresent = "present"
	StatusHalfDay = "half-day"
	StatusAbsent  = "absent"
	StatusHoliday = "holiday"
)

// AttendanceRecord is one user's attendance for one calendar day. At most one
// row exists per (username, date) within a tenant schema; the unique index is
// the backstop for the duplicate guard's read-then-write check.
type AttendanceRecord struct {
	ID       string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Username string `gorm:"column:username;type:varchar(100);not null;uniqueIndex:idx_attendance_user_date" json:"username"`
	Date     string `gorm:"column:date;type:varchar(10);not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	WorkMode string `gorm:"column:work_mode;type:varchar(20);not null" json:"workMode"`
	Status   string `gorm:"column:status;type:varchar(20);not null" json:"status"`

	ClockIn    string  `gorm:"column:clock_in;type:varchar(5);not null" json:"clockIn"`
	ClockOut   *string `gorm:"column:clock_out;type:varchar(5)" json:"clockOut"`
	TotalHours *string `gorm:"column:total_hours;type:varchar(10)" json:"totalHours"`

	// Location snapshot, null for remote submissions.
	Latitude  *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude *float64 `gorm:"column:longitude" json:"longitude"`
	Accuracy  *float64 `gorm:"column:accuracy" json:"accuracy"`
	SiteName  *string  `gorm:"column:site_name;type:varchar(100)" json:"siteName"`

	IsLateArrival  bool `gorm:"column:is_late_arrival;not null" json:"isLateArrival"`
	IsEarlyArrival bool `gorm:"column:is_early_arrival;not null" json:"isEarlyArrival"`
	IsFlexTime     bool `gorm:"column:is_flex_time;not null" json:"isFlexTime"`

	LocationValidated bool `gorm:"column:location_validated;not null" json:"locationValidated"`
	FraudCheckPassed  bool `gorm:"column:fraud_check_passed;not null" json:"fraudCheckPassed"`
	ManualOverride    bool `gorm:"column:manual_override;not null" json:"manualOverride"`

	Notes    string `gorm:"column:notes;type:text" json:"notes"`
	DeviceID string `gorm:"column:device_id;type:varchar(100)" json:"deviceId"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// Closed reports whether the day's record has been checked out.
func (r *AttendanceRecord) Closed() bool {
	return r.ClockOut != nil
}
