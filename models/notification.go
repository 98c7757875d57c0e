// models/notification.go
package models

import "time"

// Notification is a member-facing message written after approve/reject
// decisions. Delivery is fire-and-forget; failures never affect the
// triggering operation.
type Notification struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MemberID uint   `gorm:"index;not null" json:"member_id"`
	Title    string `gorm:"size:180;not null" json:"title"`
	Body     string `gorm:"size:500;not null" json:"body"`
	IsRead   bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
