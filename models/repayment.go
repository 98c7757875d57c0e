// models/repayment.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RepaymentStatusPending = "pending"
	RepaymentStatusPaid    = "paid"
)

// Repayment is one posted payment against a loan, mortgage or internal
// plan, identified by (obligation_type, obligation_id). Rows are created
// only by the ledger poster and are immutable afterwards.
type Repayment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ObligationType ObligationKind `gorm:"size:16;not null;index:idx_repayments_obligation" json:"obligation_type"`
	ObligationID   uint           `gorm:"not null;index:idx_repayments_obligation" json:"obligation_id"`
	MemberID       uint           `gorm:"index;not null" json:"member_id"`

	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	PrincipalPaid decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"principal_paid"`
	InterestPaid  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"interest_paid"`

	PaidAt        time.Time `gorm:"not null;index" json:"paid_at"`
	PaymentMethod string    `gorm:"size:32;not null" json:"payment_method"`
	Status        string    `gorm:"size:16;not null;default:paid" json:"status"`

	Reference    string `gorm:"size:64;not null;uniqueIndex" json:"reference"`
	RecordedByID uint   `gorm:"index;not null" json:"recorded_by_id"`
	Note         string `gorm:"size:255" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
