package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

// PostInput carries one repayment to be recorded against an obligation.
// PrincipalPaid/InterestPaid may be nil; the split is then derived
// proportionally from the remaining balances.
type PostInput struct {
	Amount        decimal.Decimal
	PrincipalPaid *decimal.Decimal
	InterestPaid  *decimal.Decimal
	PaidAt        time.Time
	PaymentMethod string
	Reference     string
	Note          string
	RecordedBy    uint
}

// BalanceSummary is the obligation's ledger position after a posting.
type BalanceSummary struct {
	TotalOwed          decimal.Decimal `json:"total_owed"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	RemainingTotal     decimal.Decimal `json:"remaining_total"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	Status             string          `json:"status"`
}

// SplitPayment derives a principal/interest allocation for a payment:
// the principal share is the ratio of remaining principal to remaining
// total. With nothing left to allocate against, the whole amount is
// treated as interest.
func SplitPayment(amount, remainingPrincipal, remainingTotal decimal.Decimal) (principal, interest decimal.Decimal) {
	if remainingTotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, amount
	}
	principal = remainingPrincipal.Div(remainingTotal).Mul(amount).Round(2)
	if principal.GreaterThan(amount) {
		principal = amount
	}
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	return principal, amount.Sub(principal)
}

// CheckAllocation validates a posting against the obligation's current
// balances. Check order is fixed: allocation consistency, then total
// balance, then principal balance; the first failure wins.
func CheckAllocation(amount, principal, interest, remainingTotal, remainingPrincipal decimal.Decimal) error {
	if principal.Add(interest).Sub(amount).Abs().GreaterThan(centTolerance) {
		return models.ErrAllocationMismatch
	}
	if amount.Sub(remainingTotal).GreaterThan(centTolerance) {
		return models.ErrExceedsBalance
	}
	if principal.Sub(remainingPrincipal).GreaterThan(centTolerance) {
		return models.ErrExceedsPrincipal
	}
	return nil
}

// PostRepayment validates and records a single repayment inside the
// caller's transaction. The caller must have loaded ob under a row lock:
// the paid sums are re-read here so two concurrent postings cannot
// jointly overshoot the balance. On success the repayment row is
// inserted, the parent status recomputed, and the principal portion
// bridged to the property payment plan when the obligation is tied to a
// property purchase.
func PostRepayment(tx *gorm.DB, ob models.Obligation, in PostInput) (*models.Repayment, *BalanceSummary, error) {
	if err := ob.AcceptsRepayment(); err != nil {
		return nil, nil, err
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("amount must be greater than zero")
	}

	paidAmount, paidPrincipal, err := paidSums(tx, ob)
	if err != nil {
		return nil, nil, err
	}

	totalOwed := TotalOwed(ob)
	remainingTotal := totalOwed.Sub(paidAmount)
	remainingPrincipal := ob.PrincipalAmount().Sub(paidPrincipal)

	// Settled means either nothing left to pay or no principal left: an
	// explicit split can retire the principal early, and scheduled
	// interest that will never accrue must not keep the ledger open.
	if remainingTotal.LessThanOrEqual(centTolerance) || remainingPrincipal.LessThanOrEqual(centTolerance) {
		return nil, nil, models.ErrAlreadySettled
	}

	principal, interest := resolveSplit(in, remainingPrincipal, remainingTotal)
	if err := CheckAllocation(in.Amount, principal, interest, remainingTotal, remainingPrincipal); err != nil {
		return nil, nil, err
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	reference := in.Reference
	if reference == "" {
		reference = utils.GenRepaymentRef(paidAt)
	}

	repayment := models.Repayment{
		ObligationType: ob.ObligationKind(),
		ObligationID:   ob.ObligationID(),
		MemberID:       ob.ObligationMemberID(),
		Amount:         in.Amount,
		PrincipalPaid:  principal,
		InterestPaid:   interest,
		PaidAt:         paidAt,
		PaymentMethod:  in.PaymentMethod,
		Status:         models.RepaymentStatusPaid,
		Reference:      reference,
		RecordedByID:   in.RecordedBy,
		Note:           in.Note,
	}
	if err := tx.Create(&repayment).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, nil, fmt.Errorf("reference %s: %w", reference, models.ErrDuplicateReference)
		}
		return nil, nil, err
	}

	newRemainingPrincipal := remainingPrincipal.Sub(principal)
	status := ob.CurrentStatus()
	switch {
	case newRemainingPrincipal.LessThanOrEqual(centTolerance):
		status = models.StatusCompleted
	case status == models.StatusApproved:
		// first posted repayment activates the obligation
		status = models.StatusActive
	}
	if status != ob.CurrentStatus() {
		if err := tx.Model(ob).Update("status", status).Error; err != nil {
			return nil, nil, err
		}
	}

	if pid := ob.LinkedPropertyID(); pid != nil {
		err := PostPropertyCredit(tx, *pid, ob.ObligationMemberID(), principal,
			reference, propertyTxSource(ob.ObligationKind()), ob.ObligationID())
		if err != nil {
			return nil, nil, err
		}
	}

	summary := BalanceSummary{
		TotalOwed:          totalOwed,
		TotalPaid:          paidAmount.Add(in.Amount),
		RemainingTotal:     remainingTotal.Sub(in.Amount),
		RemainingPrincipal: newRemainingPrincipal,
		Status:             status,
	}
	return &repayment, &summary, nil
}

func resolveSplit(in PostInput, remainingPrincipal, remainingTotal decimal.Decimal) (principal, interest decimal.Decimal) {
	switch {
	case in.PrincipalPaid != nil && in.InterestPaid != nil:
		return *in.PrincipalPaid, *in.InterestPaid
	case in.PrincipalPaid != nil:
		return *in.PrincipalPaid, in.Amount.Sub(*in.PrincipalPaid)
	case in.InterestPaid != nil:
		return in.Amount.Sub(*in.InterestPaid), *in.InterestPaid
	}
	return SplitPayment(in.Amount, remainingPrincipal, remainingTotal)
}

// ObligationBalance reports the current ledger position without posting.
func ObligationBalance(tx *gorm.DB, ob models.Obligation) (*BalanceSummary, error) {
	paidAmount, paidPrincipal, err := paidSums(tx, ob)
	if err != nil {
		return nil, err
	}
	totalOwed := TotalOwed(ob)
	return &BalanceSummary{
		TotalOwed:          totalOwed,
		TotalPaid:          paidAmount,
		RemainingTotal:     totalOwed.Sub(paidAmount),
		RemainingPrincipal: ob.PrincipalAmount().Sub(paidPrincipal),
		Status:             ob.CurrentStatus(),
	}, nil
}

// PaidRepayments lists the obligation's posted repayments, most recent
// first.
func PaidRepayments(tx *gorm.DB, ob models.Obligation) ([]models.Repayment, error) {
	var rows []models.Repayment
	err := tx.
		Where("obligation_type = ? AND obligation_id = ? AND status = ?",
			ob.ObligationKind(), ob.ObligationID(), models.RepaymentStatusPaid).
		Order("paid_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func paidSums(tx *gorm.DB, ob models.Obligation) (amount, principal decimal.Decimal, err error) {
	var sums struct {
		Amount    decimal.Decimal
		Principal decimal.Decimal
	}
	err = tx.Model(&models.Repayment{}).
		Select("COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(principal_paid), 0) AS principal").
		Where("obligation_type = ? AND obligation_id = ? AND status = ?",
			ob.ObligationKind(), ob.ObligationID(), models.RepaymentStatusPaid).
		Scan(&sums).Error
	return sums.Amount, sums.Principal, err
}

func propertyTxSource(kind models.ObligationKind) string {
	switch kind {
	case models.KindLoan:
		return models.PropertyTxSourceLoan
	case models.KindMortgage:
		return models.PropertyTxSourceMortgage
	default:
		return models.PropertyTxSourceCooperative
	}
}
