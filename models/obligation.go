// models/obligation.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ObligationKind string

const (
	KindLoan     ObligationKind = "loan"
	KindMortgage ObligationKind = "mortgage"
	KindPlan     ObligationKind = "plan"
)

// Lifecycle statuses shared by Loan, Mortgage and InternalMortgagePlan.
const (
	StatusPending   = "pending"
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusDefaulted = "defaulted"
)

// Obligation is the common surface of the three amortized products
// (Loan, Mortgage, InternalMortgagePlan). The ledger and the schedule
// generator only ever talk to this interface; variant-specific gating
// (e.g. schedule approval) lives behind AcceptsRepayment.
type Obligation interface {
	ObligationKind() ObligationKind
	ObligationID() uint
	ObligationMemberID() uint

	// PrincipalAmount is the original amount borrowed.
	PrincipalAmount() decimal.Decimal
	// AnnualRatePercent is the annual interest rate, 0-100.
	AnnualRatePercent() decimal.Decimal
	// Periods is the total number of repayment periods.
	Periods() int
	// PeriodsPerYear is 12 (monthly), 4, 2 or 1.
	PeriodsPerYear() int
	// PaymentAmount is the precomputed amortized periodic payment.
	PaymentAmount() decimal.Decimal
	ScheduleStart() time.Time

	CurrentStatus() string
	// AcceptsRepayment returns nil when a repayment may be posted in the
	// obligation's current lifecycle state; ErrInvalidState or
	// ErrScheduleNotApproved (from the repayment package) otherwise.
	AcceptsRepayment() error

	// LinkedPropertyID is non-nil when repayments must be bridged to a
	// property payment plan.
	LinkedPropertyID() *uint
}

// Repayment frequencies for internal mortgage plans. Loans and external
// mortgages are always monthly.
const (
	FrequencyMonthly    = "monthly"
	FrequencyQuarterly  = "quarterly"
	FrequencyBiannually = "biannually"
	FrequencyAnnually   = "annually"
)

// PeriodsPerYearFor maps a frequency string to its periods-per-year count.
// Unknown values fall back to monthly.
func PeriodsPerYearFor(frequency string) int {
	switch frequency {
	case FrequencyQuarterly:
		return 4
	case FrequencyBiannually:
		return 2
	case FrequencyAnnually:
		return 1
	default:
		return 12
	}
}
