// models/activity_log.go
package models

import "time"

// ActivityLog is the audit trail: one row per admin action that changes
// ledger or lifecycle state.
type ActivityLog struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	AdminID uint   `gorm:"index;not null" json:"admin_id"`
	Action  string `gorm:"size:64;not null;index" json:"action"`

	EntityType string `gorm:"size:32;not null" json:"entity_type"`
	EntityID   uint   `gorm:"not null" json:"entity_id"`
	Detail     string `gorm:"size:500" json:"detail"`

	CreatedAt time.Time `json:"created_at"`
}
