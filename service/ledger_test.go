package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSplitPayment_Proportional(t *testing.T) {
	// remaining principal is 80% of remaining total, so 80% of the
	// payment goes to principal
	principal, interest := SplitPayment(d("10000"), d("80000"), d("100000"))
	assert.True(t, principal.Equal(d("8000")), "principal %s", principal)
	assert.True(t, interest.Equal(d("2000")), "interest %s", interest)
	assert.True(t, principal.Add(interest).Equal(d("10000")))
}

func TestSplitPayment_NothingLeftIsAllInterest(t *testing.T) {
	principal, interest := SplitPayment(d("500"), d("0"), d("0"))
	assert.True(t, principal.IsZero())
	assert.True(t, interest.Equal(d("500")))
}

func TestSplitPayment_NeverExceedsAmount(t *testing.T) {
	// degenerate ratio > 1 must still keep principal within the payment
	principal, interest := SplitPayment(d("100"), d("5000"), d("4000"))
	assert.True(t, principal.LessThanOrEqual(d("100")))
	assert.True(t, principal.Add(interest).Equal(d("100")))
}

func TestCheckAllocation_OrderOfFailures(t *testing.T) {
	remainingTotal := d("1000")
	remainingPrincipal := d("800")

	// allocation mismatch wins over everything else
	err := CheckAllocation(d("100"), d("90"), d("20"), remainingTotal, remainingPrincipal)
	assert.ErrorIs(t, err, models.ErrAllocationMismatch)

	// amount above remaining total
	err = CheckAllocation(d("2000"), d("1600"), d("400"), remainingTotal, remainingPrincipal)
	assert.ErrorIs(t, err, models.ErrExceedsBalance)

	// principal above remaining principal
	err = CheckAllocation(d("900"), d("900"), d("0"), remainingTotal, remainingPrincipal)
	assert.ErrorIs(t, err, models.ErrExceedsPrincipal)

	// exact fit passes
	err = CheckAllocation(d("1000"), d("800"), d("200"), remainingTotal, remainingPrincipal)
	assert.NoError(t, err)
}

func TestCheckAllocation_CentTolerance(t *testing.T) {
	// one-cent drift from rounding is not a mismatch
	err := CheckAllocation(d("100.00"), d("66.67"), d("33.34"), d("1000"), d("800"))
	assert.NoError(t, err)

	err = CheckAllocation(d("100.00"), d("66.67"), d("33.36"), d("1000"), d("800"))
	assert.ErrorIs(t, err, models.ErrAllocationMismatch)
}

func TestResolveSplit_ExplicitAndDerived(t *testing.T) {
	p := d("700")
	i := d("300")

	principal, interest := resolveSplit(PostInput{Amount: d("1000"), PrincipalPaid: &p, InterestPaid: &i}, d("5000"), d("6000"))
	assert.True(t, principal.Equal(p))
	assert.True(t, interest.Equal(i))

	// only principal given: interest is the remainder
	principal, interest = resolveSplit(PostInput{Amount: d("1000"), PrincipalPaid: &p}, d("5000"), d("6000"))
	assert.True(t, principal.Equal(p))
	assert.True(t, interest.Equal(d("300")))

	// only interest given: principal is the remainder
	principal, interest = resolveSplit(PostInput{Amount: d("1000"), InterestPaid: &i}, d("5000"), d("6000"))
	assert.True(t, principal.Equal(d("700")))
	assert.True(t, interest.Equal(i))

	// nothing given: proportional split
	principal, interest = resolveSplit(PostInput{Amount: d("1000")}, d("3000"), d("6000"))
	assert.True(t, principal.Equal(d("500")))
	assert.True(t, interest.Equal(d("500")))
}

// Posting order must not change the final remaining principal: the
// reduction is a plain sum over posted principal portions.
func TestPrincipalReduction_OrderIndependent(t *testing.T) {
	principal := d("100000")
	splits := []decimal.Decimal{d("20000"), d("35000.55"), d("10000.45"), d("34499")}

	forward := principal
	for _, s := range splits {
		forward = forward.Sub(s)
	}
	backward := principal
	for i := len(splits) - 1; i >= 0; i-- {
		backward = backward.Sub(splits[i])
	}

	assert.True(t, forward.Equal(backward))
	assert.True(t, forward.Equal(d("500")))
	assert.False(t, forward.IsNegative())
}

func TestObligationGating(t *testing.T) {
	loan := &models.Loan{Status: models.StatusPending}
	require.ErrorIs(t, loan.AcceptsRepayment(), models.ErrInvalidState)

	loan.Status = models.StatusApproved
	require.NoError(t, loan.AcceptsRepayment())

	mortgage := &models.Mortgage{Status: models.StatusApproved, ScheduleApproved: false}
	require.ErrorIs(t, mortgage.AcceptsRepayment(), models.ErrScheduleNotApproved)

	mortgage.ScheduleApproved = true
	require.NoError(t, mortgage.AcceptsRepayment())

	mortgage.Status = models.StatusCancelled
	require.ErrorIs(t, mortgage.AcceptsRepayment(), models.ErrInvalidState)

	plan := &models.InternalMortgagePlan{Status: models.StatusDraft, ScheduleApproved: true}
	require.ErrorIs(t, plan.AcceptsRepayment(), models.ErrInvalidState)

	plan.Status = models.StatusActive
	require.NoError(t, plan.AcceptsRepayment())
}

func TestPropertyTxSource(t *testing.T) {
	assert.Equal(t, models.PropertyTxSourceLoan, propertyTxSource(models.KindLoan))
	assert.Equal(t, models.PropertyTxSourceMortgage, propertyTxSource(models.KindMortgage))
	assert.Equal(t, models.PropertyTxSourceCooperative, propertyTxSource(models.KindPlan))
}
