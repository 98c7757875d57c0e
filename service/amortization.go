package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	// centTolerance absorbs 2dp rounding residue in ledger comparisons.
	centTolerance = decimal.NewFromFloat(0.01)

	// paidMatchRatio is the minimum share of a scheduled principal a
	// posted repayment must cover to mark the schedule row paid.
	paidMatchRatio = decimal.NewFromFloat(0.99)
)

// Schedule entry statuses, derived at read time and never stored.
const (
	ScheduleStatusPending = "pending"
	ScheduleStatusPaid    = "paid"
	ScheduleStatusOverdue = "overdue"
)

// PeriodicPayment computes the amortized payment per period.
//
//	payment = principal * (r * (1+r)^n) / ((1+r)^n - 1)
//
// where r is the per-period rate (annual% / 100 / periodsPerYear) and n
// the number of periods. A zero rate, or a degenerate (1+r)^n == 1,
// falls back to straight-line division. The result is rounded to 2
// decimal places; creation and schedule generation must both go through
// this function so the stored periodic_payment never drifts.
func PeriodicPayment(principal, annualRatePercent decimal.Decimal, numberOfPeriods, periodsPerYear int) decimal.Decimal {
	if numberOfPeriods <= 0 {
		return principal.Round(2)
	}
	n := decimal.NewFromInt(int64(numberOfPeriods))
	if periodsPerYear <= 0 {
		periodsPerYear = 12
	}

	r := annualRatePercent.Div(hundred).Div(decimal.NewFromInt(int64(periodsPerYear)))
	if r.IsZero() {
		return principal.DivRound(n, 2)
	}

	pow := one.Add(r).Pow(n)
	denom := pow.Sub(one)
	if denom.IsZero() {
		return principal.DivRound(n, 2)
	}
	return principal.Mul(r).Mul(pow).Div(denom).Round(2)
}

// ScheduleEntry is one period of a repayment schedule.
type ScheduleEntry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           string          `json:"status"`
}

// GenerateSchedule produces the full period-by-period schedule for an
// obligation. It is recomputed from the obligation's current terms on
// every call; nothing here is persisted. The final period absorbs
// rounding residue so the scheduled principal always sums back to the
// original principal. paid feeds the derived row statuses and may be nil.
func GenerateSchedule(ob models.Obligation, paid []models.Repayment, now time.Time) []ScheduleEntry {
	numberOfPeriods := ob.Periods()
	perYear := ob.PeriodsPerYear()
	periodMonths := 12 / perYear

	rate := ob.AnnualRatePercent().Div(hundred).Div(decimal.NewFromInt(int64(perYear)))
	payment := ob.PaymentAmount()
	if payment.IsZero() {
		payment = PeriodicPayment(ob.PrincipalAmount(), ob.AnnualRatePercent(), numberOfPeriods, perYear)
	}

	start := ob.ScheduleStart()
	balance := ob.PrincipalAmount()
	entries := make([]ScheduleEntry, 0, numberOfPeriods)

	for period := 1; period <= numberOfPeriods; period++ {
		interest := balance.Mul(rate).Round(2)
		principal := payment.Sub(interest)
		total := payment

		// Clamp the last slice to the remaining balance; the row total
		// for that period is recomputed from the clamped split.
		if period == numberOfPeriods || balance.LessThanOrEqual(principal) {
			principal = balance
			total = principal.Add(interest)
		}

		balance = balance.Sub(principal).Round(2)

		entries = append(entries, ScheduleEntry{
			Period:           period,
			DueDate:          start.AddDate(0, period*periodMonths, 0),
			Principal:        principal,
			Interest:         interest,
			Total:            total,
			RemainingBalance: balance,
		})

		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}
	}

	applyScheduleStatuses(entries, paid, now)
	return entries
}

// applyScheduleStatuses reconciles schedule rows against posted
// repayments. Repayments carry no period link, so this is a best-effort
// display heuristic, never ledger truth: a row is paid when an unused
// paid repayment exists with paid_at not after the due date and a
// principal portion covering at least 99% of the scheduled principal,
// most recent candidate first.
func applyScheduleStatuses(entries []ScheduleEntry, paid []models.Repayment, now time.Time) {
	candidates := make([]models.Repayment, 0, len(paid))
	for _, r := range paid {
		if r.Status == models.RepaymentStatusPaid {
			candidates = append(candidates, r)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].PaidAt.Before(candidates[j].PaidAt)
	})
	used := make([]bool, len(candidates))

	for i := range entries {
		e := &entries[i]
		threshold := e.Principal.Mul(paidMatchRatio)

		matched := -1
		for j := len(candidates) - 1; j >= 0; j-- {
			if used[j] || candidates[j].PaidAt.After(e.DueDate) {
				continue
			}
			if candidates[j].PrincipalPaid.GreaterThanOrEqual(threshold) {
				matched = j
				break
			}
		}

		switch {
		case matched >= 0:
			used[matched] = true
			e.Status = ScheduleStatusPaid
		case e.DueDate.Before(now):
			e.Status = ScheduleStatusOverdue
		default:
			e.Status = ScheduleStatusPending
		}
	}
}

// TotalOwed is the full amount due over the obligation's life: the sum
// of all scheduled row totals, including the adjusted final period.
func TotalOwed(ob models.Obligation) decimal.Decimal {
	total := decimal.Zero
	for _, e := range GenerateSchedule(ob, nil, time.Time{}) {
		total = total.Add(e.Total)
	}
	return total
}

// NextPayment returns the first unpaid schedule entry, or nil when the
// schedule is fully settled.
func NextPayment(ob models.Obligation, paid []models.Repayment, now time.Time) *ScheduleEntry {
	for _, e := range GenerateSchedule(ob, paid, now) {
		if e.Status != ScheduleStatusPaid {
			next := e
			return &next
		}
	}
	return nil
}
