// models/mortgage.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mortgage is an external bank mortgage administered by the cooperative.
// Term is captured in years and normalized to months; repaid monthly.
type Mortgage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MemberID uint   `gorm:"index;not null" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	Principal       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"principal"`
	InterestRate    decimal.Decimal `gorm:"type:numeric(7,4);not null" json:"interest_rate"`
	TermYears       int             `gorm:"not null" json:"term_years"`
	PeriodicPayment decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"periodic_payment"`

	Lender    string    `gorm:"size:180" json:"lender"`
	Status    string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	StartDate time.Time `gorm:"not null" json:"start_date"`

	// Repayments may not post until an admin has approved the generated
	// schedule.
	ScheduleApproved bool `gorm:"not null;default:false" json:"schedule_approved"`

	PropertyID *uint `gorm:"index" json:"property_id,omitempty"`

	ApprovedByID *uint      `json:"approved_by_id,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Mortgage) ObligationKind() ObligationKind     { return KindMortgage }
func (m *Mortgage) ObligationID() uint                 { return m.ID }
func (m *Mortgage) ObligationMemberID() uint           { return m.MemberID }
func (m *Mortgage) PrincipalAmount() decimal.Decimal   { return m.Principal }
func (m *Mortgage) AnnualRatePercent() decimal.Decimal { return m.InterestRate }
func (m *Mortgage) Periods() int                       { return m.TermYears * 12 }
func (m *Mortgage) PeriodsPerYear() int                { return 12 }
func (m *Mortgage) PaymentAmount() decimal.Decimal     { return m.PeriodicPayment }
func (m *Mortgage) ScheduleStart() time.Time           { return m.StartDate }
func (m *Mortgage) CurrentStatus() string              { return m.Status }
func (m *Mortgage) LinkedPropertyID() *uint            { return m.PropertyID }

func (m *Mortgage) AcceptsRepayment() error {
	switch m.Status {
	case StatusApproved, StatusActive:
	default:
		return ErrInvalidState
	}
	if !m.ScheduleApproved {
		return ErrScheduleNotApproved
	}
	return nil
}
