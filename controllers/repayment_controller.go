package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/service"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

type RepaymentInput struct {
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	PrincipalPaid *decimal.Decimal `json:"principal_paid"`
	InterestPaid  *decimal.Decimal `json:"interest_paid"`
	PaymentDate   string           `json:"payment_date"`
	PaymentMethod string           `json:"payment_method" binding:"required"`
	Reference     string           `json:"reference"`
	Note          string           `json:"note"`
}

// RepaymentPost posts a single repayment against an obligation of the
// given kind. The parent row is locked and the posting validated and
// committed in one transaction.
func RepaymentPost(kind models.ObligationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := currentAdminID(c)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		id, _ := strconv.Atoi(c.Param("id"))

		var in RepaymentInput
		if err := c.ShouldBindJSON(&in); err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid payload", err)
			return
		}
		if in.Amount.LessThanOrEqual(decimal.Zero) {
			utils.Error(c, http.StatusBadRequest, "amount must be greater than zero", nil)
			return
		}

		input := service.PostInput{
			Amount:        in.Amount,
			PrincipalPaid: in.PrincipalPaid,
			InterestPaid:  in.InterestPaid,
			PaymentMethod: in.PaymentMethod,
			Reference:     in.Reference,
			Note:          in.Note,
			RecordedBy:    adminID,
		}
		if in.PaymentDate != "" {
			d, err := time.Parse("2006-01-02", in.PaymentDate)
			if err != nil {
				utils.Error(c, http.StatusBadRequest, "invalid payment_date, expected YYYY-MM-DD", nil)
				return
			}
			input.PaidAt = d
		}

		var (
			repayment *models.Repayment
			summary   *service.BalanceSummary
		)
		err = config.DB.Transaction(func(tx *gorm.DB) error {
			ob, err := service.LoadObligation(tx, kind, uint(id), true)
			if err != nil {
				return err
			}
			repayment, summary, err = service.PostRepayment(tx, ob, input)
			if err != nil {
				return err
			}
			service.LogActivity(tx, adminID, "repayment.post", string(kind), ob.ObligationID(),
				fmt.Sprintf("posted %s (%s)", in.Amount.StringFixed(2), repayment.Reference))
			return nil
		})
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		utils.Success(c, "repayment recorded", gin.H{
			"repayment": repayment,
			"balance":   summary,
		})
	}
}

// RepaymentHistory lists posted repayments, most recent first.
func RepaymentHistory(kind models.ObligationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))

		ob, err := service.LoadObligation(config.DB, kind, uint(id), false)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		rows, err := service.PaidRepayments(config.DB, ob)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		utils.Success(c, "repayments", rows)
	}
}

// RepaymentSchedule returns the derived period-by-period schedule. Row
// statuses come from the best-effort reconciliation against posted
// repayments; they are display logic, not ledger truth.
func RepaymentSchedule(kind models.ObligationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))

		ob, err := service.LoadObligation(config.DB, kind, uint(id), false)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		paid, err := service.PaidRepayments(config.DB, ob)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		balance, err := service.ObligationBalance(config.DB, ob)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		entries := service.GenerateSchedule(ob, paid, time.Now().UTC())
		utils.Success(c, "repayment schedule", gin.H{
			"schedule": entries,
			"balance":  balance,
		})
	}
}

// RepaymentNext returns the first unpaid schedule entry.
func RepaymentNext(kind models.ObligationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))

		ob, err := service.LoadObligation(config.DB, kind, uint(id), false)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		paid, err := service.PaidRepayments(config.DB, ob)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		next := service.NextPayment(ob, paid, time.Now().UTC())
		if next == nil {
			utils.Success(c, "schedule fully settled", nil)
			return
		}
		utils.Success(c, "next payment", next)
	}
}
