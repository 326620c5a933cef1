package model

import "time"

// UserStats is a per-user running counter row, incremented best-effort after
// each committed record. It is advisory display data, not a source of truth.
type UserStats struct {
	Username    string  `gorm:"primaryKey;column:username;type:varchar(100)" json:"username"`
	DaysPresent int     `gorm:"column:days_present;not null" json:"daysPresent"`
	DaysHalf    int     `gorm:"column:days_half;not null" json:"daysHalf"`
	LateCount   int     `gorm:"column:late_count;not null" json:"lateCount"`
	TotalHours  float64 `gorm:"column:total_hours;not null" json:"totalHours"`

	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
