// models/member.go
package models

import "time"

type Member struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	UUID string `gorm:"size:36;not null;uniqueIndex" json:"uuid"`

	MemberNumber string `gorm:"size:32;not null;uniqueIndex" json:"member_number"`
	StaffID      string `gorm:"size:32;index" json:"staff_id"`

	FirstName string `gorm:"size:120;not null" json:"first_name"`
	LastName  string `gorm:"size:120;not null" json:"last_name"`
	Email     string `gorm:"size:180;index" json:"email"`
	Phone     string `gorm:"size:32" json:"phone"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
