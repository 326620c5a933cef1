package model

import "time"

// PunchRecord is a raw device punch ingested from a CSV export, kept for
// audit alongside the attendance records derived from it.
type PunchRecord struct {
	ID        string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Username  string `gorm:"column:username;type:varchar(100);not null;index" json:"username"`
	Date      string `gorm:"column:date;type:varchar(10);not null" json:"date"`
	Timestamp string `gorm:"column:timestamp;type:varchar(35);not null" json:"timestamp"`
	DeviceID  string `gorm:"column:device_id;type:varchar(100)" json:"deviceId"`

	// pending | processed | error
	ProcessStatus string `gorm:"column:process_status;type:varchar(20);not null" json:"processStatus"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (PunchRecord) TableName() string {
	return "punch_records"
}
