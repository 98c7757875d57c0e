package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

// PostPropertyCredit records a repayment's principal portion against the
// member's property payment plan. Interest never counts toward property
// equity, so callers pass the principal slice only. The plan lookup goes
// through the member's approved interest; when no plan is found the
// transaction is still written with a null plan_id - equity progress is
// best-effort tracking, not a hard dependency of the repayment ledger.
func PostPropertyCredit(tx *gorm.DB, propertyID, memberID uint, principal decimal.Decimal, reference, source string, originID uint) error {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	var planID *uint
	var interest models.PropertyInterest
	err := tx.
		Where("property_id = ? AND member_id = ? AND status = ?",
			propertyID, memberID, models.InterestStatusApproved).
		First(&interest).Error
	switch {
	case err == nil:
		var plan models.PropertyPaymentPlan
		planErr := tx.
			Where("property_id = ? AND member_id = ?", propertyID, memberID).
			First(&plan).Error
		if planErr == nil {
			planID = &plan.ID
			if err := tx.Model(&models.PropertyPaymentPlan{}).
				Where("id = ?", plan.ID).
				Update("amount_paid", gorm.Expr("amount_paid + ?", principal)).Error; err != nil {
				return err
			}
		} else if !errors.Is(planErr, gorm.ErrRecordNotFound) {
			return planErr
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	entry := models.PropertyPaymentTransaction{
		PropertyID: propertyID,
		MemberID:   memberID,
		PlanID:     planID,
		Amount:     principal,
		Direction:  "credit",
		Status:     "completed",
		Source:     source,
		OriginID:   originID,
		Reference:  reference,
	}
	return tx.Create(&entry).Error
}
