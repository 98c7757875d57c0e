// models/property.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:200;not null" json:"title"`
	Code  string `gorm:"size:64;not null;uniqueIndex" json:"code"`

	Location string          `gorm:"size:255" json:"location"`
	Price    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`

	IsAvailable bool `gorm:"not null;default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	InterestStatusPending  = "pending"
	InterestStatusApproved = "approved"
	InterestStatusDeclined = "declined"
)

// PropertyInterest links a member to a property they are buying into.
type PropertyInterest struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID uint   `gorm:"index;not null" json:"property_id"`
	MemberID   uint   `gorm:"index;not null" json:"member_id"`
	Status     string `gorm:"size:20;not null;default:pending" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PropertyPaymentPlan tracks a member's equity progress on a property.
type PropertyPaymentPlan struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"index;not null" json:"property_id"`
	MemberID   uint `gorm:"index;not null" json:"member_id"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	AmountPaid  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"amount_paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sources for property payment transactions.
const (
	PropertyTxSourceLoan        = "loan"
	PropertyTxSourceMortgage    = "mortgage"
	PropertyTxSourceCooperative = "cooperative"
)

// PropertyPaymentTransaction is a credit-only ledger entry bridging a
// repayment's principal portion into a property payment plan. PlanID is
// nullable: progress tracking is best-effort, the entry is recorded even
// when no plan exists yet.
type PropertyPaymentTransaction struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	PropertyID uint  `gorm:"index;not null" json:"property_id"`
	MemberID   uint  `gorm:"index;not null" json:"member_id"`
	PlanID     *uint `gorm:"index" json:"plan_id,omitempty"`

	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Direction string          `gorm:"size:10;not null;default:credit" json:"direction"`
	Status    string          `gorm:"size:20;not null;default:completed" json:"status"`

	// Source identifies where the credit originated: loan, mortgage or
	// cooperative (internal plan). OriginID is the id in that ledger.
	Source    string `gorm:"size:20;not null;index" json:"source"`
	OriginID  uint   `gorm:"not null;index" json:"origin_id"`
	Reference string `gorm:"size:64;not null;index" json:"reference"`

	CreatedAt time.Time `json:"created_at"`
}
