// models/internal_mortgage_plan.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InternalMortgagePlan is a cooperative-financed mortgage plan. Unlike
// loans and external mortgages it supports non-monthly repayment
// frequencies.
type InternalMortgagePlan struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MemberID uint   `gorm:"index;not null" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	Principal       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"principal"`
	InterestRate    decimal.Decimal `gorm:"type:numeric(7,4);not null" json:"interest_rate"`
	TermMonths      int             `gorm:"not null" json:"term_months"`
	Frequency       string          `gorm:"size:16;not null;default:monthly" json:"frequency"`
	PeriodicPayment decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"periodic_payment"`

	Status    string    `gorm:"size:20;not null;default:draft;index" json:"status"`
	StartDate time.Time `gorm:"not null" json:"start_date"`

	ScheduleApproved bool `gorm:"not null;default:false" json:"schedule_approved"`

	PropertyID *uint `gorm:"index" json:"property_id,omitempty"`

	ApprovedByID *uint      `json:"approved_by_id,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *InternalMortgagePlan) ObligationKind() ObligationKind     { return KindPlan }
func (p *InternalMortgagePlan) ObligationID() uint                 { return p.ID }
func (p *InternalMortgagePlan) ObligationMemberID() uint           { return p.MemberID }
func (p *InternalMortgagePlan) PrincipalAmount() decimal.Decimal   { return p.Principal }
func (p *InternalMortgagePlan) AnnualRatePercent() decimal.Decimal { return p.InterestRate }
func (p *InternalMortgagePlan) PeriodsPerYear() int                { return PeriodsPerYearFor(p.Frequency) }
func (p *InternalMortgagePlan) PaymentAmount() decimal.Decimal     { return p.PeriodicPayment }
func (p *InternalMortgagePlan) ScheduleStart() time.Time           { return p.StartDate }
func (p *InternalMortgagePlan) CurrentStatus() string              { return p.Status }
func (p *InternalMortgagePlan) LinkedPropertyID() *uint            { return p.PropertyID }

// Periods converts the month-denominated term into the number of
// repayment periods for the plan's frequency.
func (p *InternalMortgagePlan) Periods() int {
	periodMonths := 12 / p.PeriodsPerYear()
	n := p.TermMonths / periodMonths
	if n < 1 {
		n = 1
	}
	return n
}

func (p *InternalMortgagePlan) AcceptsRepayment() error {
	switch p.Status {
	case StatusApproved, StatusActive:
	default:
		return ErrInvalidState
	}
	if !p.ScheduleApproved {
		return ErrScheduleNotApproved
	}
	return nil
}
