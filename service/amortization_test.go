package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

func testLoan(principal string, rate string, termMonths int) *models.Loan {
	p := decimal.RequireFromString(principal)
	r := decimal.RequireFromString(rate)
	return &models.Loan{
		ID:              1,
		MemberID:        7,
		Principal:       p,
		InterestRate:    r,
		TermMonths:      termMonths,
		PeriodicPayment: PeriodicPayment(p, r, termMonths, 12),
		Status:          models.StatusActive,
		StartDate:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestPeriodicPayment_ZeroRateStraightLine(t *testing.T) {
	got := PeriodicPayment(decimal.NewFromInt(1_000_000), decimal.Zero, 12, 12)
	assert.True(t, got.Equal(decimal.RequireFromString("83333.33")), "got %s", got)
}

func TestPeriodicPayment_AmortizationFormula(t *testing.T) {
	// 5,000,000 at 6.5% over 240 months
	got := PeriodicPayment(decimal.NewFromInt(5_000_000), decimal.RequireFromString("6.5"), 240, 12)
	want := decimal.RequireFromString("37278.66")
	assert.True(t, got.Sub(want).Abs().LessThanOrEqual(decimal.NewFromInt(1)), "got %s, want ~%s", got, want)
}

func TestPeriodicPayment_DegenerateGuards(t *testing.T) {
	// zero periods must not divide by zero
	got := PeriodicPayment(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0, 12)
	assert.True(t, got.Equal(decimal.NewFromInt(1000)))

	// quarterly frequency changes the per-period rate
	monthly := PeriodicPayment(decimal.NewFromInt(250_000), decimal.NewFromInt(12), 8, 12)
	quarterly := PeriodicPayment(decimal.NewFromInt(250_000), decimal.NewFromInt(12), 8, 4)
	assert.False(t, monthly.Equal(quarterly))
}

func TestGenerateSchedule_PrincipalSumsToOriginal(t *testing.T) {
	cases := []struct {
		name      string
		principal string
		rate      string
		term      int
	}{
		{"zero rate", "1000000", "0", 12},
		{"long mortgage", "5000000", "6.5", 240},
		{"odd principal", "333333.33", "14.25", 36},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loan := testLoan(tc.principal, tc.rate, tc.term)
			entries := GenerateSchedule(loan, nil, time.Time{})
			require.Len(t, entries, tc.term)

			sum := decimal.Zero
			for _, e := range entries {
				sum = sum.Add(e.Principal)
			}
			diff := sum.Sub(decimal.RequireFromString(tc.principal)).Abs()
			assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
				"principal sum %s drifts by %s", sum, diff)

			last := entries[len(entries)-1]
			assert.True(t, last.RemainingBalance.LessThanOrEqual(decimal.Zero))
		})
	}
}

func TestGenerateSchedule_FinalPeriodAbsorbsResidue(t *testing.T) {
	loan := testLoan("1000000", "0", 12)
	entries := GenerateSchedule(loan, nil, time.Time{})
	require.Len(t, entries, 12)

	// 11 periods of 83,333.33 leave 83,333.37 for the final slice
	assert.True(t, entries[10].Principal.Equal(decimal.RequireFromString("83333.33")))
	assert.True(t, entries[11].Principal.Equal(decimal.RequireFromString("83333.37")))
	assert.True(t, entries[11].Total.Equal(decimal.RequireFromString("83333.37")))
}

func TestGenerateSchedule_StopsAtZeroBalance(t *testing.T) {
	loan := testLoan("100000", "0", 24)
	// oversized payment pays the loan off early; the loop must not
	// overrun the remaining periods
	loan.PeriodicPayment = decimal.NewFromInt(30_000)

	entries := GenerateSchedule(loan, nil, time.Time{})
	require.Len(t, entries, 4)
	assert.True(t, entries[3].Principal.Equal(decimal.NewFromInt(10_000)))
	assert.True(t, entries[3].RemainingBalance.IsZero())
}

func TestGenerateSchedule_DueDatesFollowFrequency(t *testing.T) {
	plan := &models.InternalMortgagePlan{
		Principal:    decimal.NewFromInt(400_000),
		InterestRate: decimal.Zero,
		TermMonths:   12,
		Frequency:    models.FrequencyQuarterly,
		Status:       models.StatusActive,
		StartDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	plan.PeriodicPayment = PeriodicPayment(plan.Principal, plan.InterestRate, plan.Periods(), plan.PeriodsPerYear())

	entries := GenerateSchedule(plan, nil, time.Time{})
	require.Len(t, entries, 4)
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), entries[3].DueDate)
}

func TestGenerateSchedule_DerivedStatuses(t *testing.T) {
	loan := testLoan("1000000", "0", 12)
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC) // periods 1 and 2 are due

	paid := []models.Repayment{
		{
			ObligationType: models.KindLoan,
			ObligationID:   loan.ID,
			PrincipalPaid:  decimal.RequireFromString("83333.33"),
			PaidAt:         time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			Status:         models.RepaymentStatusPaid,
		},
	}

	entries := GenerateSchedule(loan, paid, now)
	assert.Equal(t, ScheduleStatusPaid, entries[0].Status)
	assert.Equal(t, ScheduleStatusOverdue, entries[1].Status)
	assert.Equal(t, ScheduleStatusPending, entries[2].Status)
}

func TestGenerateSchedule_PartialPaymentDoesNotMarkPaid(t *testing.T) {
	loan := testLoan("1000000", "0", 12)
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	// pays less than 99% of the scheduled principal
	paid := []models.Repayment{
		{
			PrincipalPaid: decimal.NewFromInt(40_000),
			PaidAt:        time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			Status:        models.RepaymentStatusPaid,
		},
	}

	entries := GenerateSchedule(loan, paid, now)
	assert.Equal(t, ScheduleStatusOverdue, entries[0].Status)
}

func TestTotalOwed_MatchesScheduleTotals(t *testing.T) {
	loan := testLoan("5000000", "6.5", 240)
	entries := GenerateSchedule(loan, nil, time.Time{})

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Total)
	}
	assert.True(t, TotalOwed(loan).Equal(sum))

	// interest-bearing loans owe more than the principal
	assert.True(t, TotalOwed(loan).GreaterThan(loan.Principal))
}

func TestNextPayment(t *testing.T) {
	loan := testLoan("1000000", "0", 12)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	next := NextPayment(loan, nil, now)
	require.NotNil(t, next)
	assert.Equal(t, 1, next.Period)

	paid := []models.Repayment{
		{
			PrincipalPaid: decimal.RequireFromString("83333.33"),
			PaidAt:        time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			Status:        models.RepaymentStatusPaid,
		},
	}
	next = NextPayment(loan, paid, now)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Period)
}
