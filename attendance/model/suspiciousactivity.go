package model

import "time"

// Risk levels, ordered by the number of triggered heuristics.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// SuspiciousActivity is an append-only annotation produced by the fraud
// heuristics after a record is committed. It never blocks the record.
type SuspiciousActivity struct {
	ID       string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Username string `gorm:"column:username;type:varchar(100);not null;index" json:"username"`
	RecordID string `gorm:"column:record_id;type:varchar(36);not null" json:"recordId"`
	Date     string `gorm:"column:date;type:varchar(10);not null" json:"date"`

	// Reasons is the triggered heuristics joined with "; ".
	Reasons   string `gorm:"column:reasons;type:text;not null" json:"reasons"`
	RiskLevel string `gorm:"column:risk_level;type:varchar(10);not null" json:"riskLevel"`

	Resolved   bool    `gorm:"column:resolved;not null" json:"resolved"`
	ResolvedBy *string `gorm:"column:resolved_by;type:varchar(100)" json:"resolvedBy"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (SuspiciousActivity) TableName() string {
	return "suspicious_activities"
}
