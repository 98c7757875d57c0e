// models/loan.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is an external cooperative loan. Always repaid monthly.
type Loan struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MemberID uint   `gorm:"index;not null" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	Principal       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"principal"`
	InterestRate    decimal.Decimal `gorm:"type:numeric(7,4);not null" json:"interest_rate"` // annual %, 0-100
	TermMonths      int             `gorm:"not null" json:"term_months"`
	PeriodicPayment decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"periodic_payment"`

	Purpose   string    `gorm:"size:255" json:"purpose"`
	Status    string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	StartDate time.Time `gorm:"not null" json:"start_date"`

	// Set when the loan funds a property purchase; repayment principal is
	// then bridged to the property payment plan.
	PropertyID *uint `gorm:"index" json:"property_id,omitempty"`

	ApprovedByID *uint      `json:"approved_by_id,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Loan) ObligationKind() ObligationKind     { return KindLoan }
func (l *Loan) ObligationID() uint                 { return l.ID }
func (l *Loan) ObligationMemberID() uint           { return l.MemberID }
func (l *Loan) PrincipalAmount() decimal.Decimal   { return l.Principal }
func (l *Loan) AnnualRatePercent() decimal.Decimal { return l.InterestRate }
func (l *Loan) Periods() int                       { return l.TermMonths }
func (l *Loan) PeriodsPerYear() int                { return 12 }
func (l *Loan) PaymentAmount() decimal.Decimal     { return l.PeriodicPayment }
func (l *Loan) ScheduleStart() time.Time           { return l.StartDate }
func (l *Loan) CurrentStatus() string              { return l.Status }
func (l *Loan) LinkedPropertyID() *uint            { return l.PropertyID }

// AcceptsRepayment allows posting on approved, active and completed loans;
// a completed loan is then rejected by the settled-balance check instead,
// so the caller gets the more specific error.
func (l *Loan) AcceptsRepayment() error {
	switch l.Status {
	case StatusApproved, StatusActive, StatusCompleted:
		return nil
	}
	return ErrInvalidState
}
