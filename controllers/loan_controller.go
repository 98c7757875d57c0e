package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/service"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

type LoanCreateInput struct {
	MemberID     uint            `json:"member_id" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months" binding:"required,min=1"`
	Purpose      string          `json:"purpose"`
	StartDate    string          `json:"start_date"`
	PropertyID   *uint           `json:"property_id"`
}

func LoanCreate(c *gin.Context) {
	var in LoanCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		utils.Error(c, http.StatusBadRequest, "principal must be greater than zero", nil)
		return
	}
	if in.InterestRate.IsNegative() || in.InterestRate.GreaterThan(decimal.NewFromInt(100)) {
		utils.Error(c, http.StatusBadRequest, "interest rate must be between 0 and 100", nil)
		return
	}

	var member models.Member
	if err := config.DB.First(&member, in.MemberID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "member not found", nil)
		return
	}

	startDate := time.Now().UTC()
	if in.StartDate != "" {
		d, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD", nil)
			return
		}
		startDate = d
	}

	loan := models.Loan{
		MemberID:     in.MemberID,
		Principal:    in.Principal,
		InterestRate: in.InterestRate,
		TermMonths:   in.TermMonths,
		// derived once; the schedule generator reproduces it identically
		PeriodicPayment: service.PeriodicPayment(in.Principal, in.InterestRate, in.TermMonths, 12),
		Purpose:         in.Purpose,
		Status:          models.StatusPending,
		StartDate:       startDate,
		PropertyID:      in.PropertyID,
	}

	if err := config.DB.Create(&loan).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create loan", err)
		return
	}
	utils.Success(c, "loan application submitted", loan)
}

func LoanList(c *gin.Context) {
	var rows []models.Loan
	q := config.DB.Preload("Member").Order("created_at DESC, id DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if memberID := c.Query("member_id"); memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch loans", err)
		return
	}
	utils.Success(c, "loans", rows)
}

func LoanDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var loan models.Loan
	if err := config.DB.Preload("Member").First(&loan, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "loan not found", nil)
		return
	}

	balance, err := service.ObligationBalance(config.DB, &loan)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.Success(c, "loan", gin.H{"loan": loan, "balance": balance})
}

func LoanApprove(c *gin.Context) {
	decideLoan(c, models.StatusApproved, "loan approved")
}

func LoanReject(c *gin.Context) {
	decideLoan(c, models.StatusRejected, "loan rejected")
}

func decideLoan(c *gin.Context, newStatus, message string) {
	adminID, err := currentAdminID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var loan models.Loan
	if err := config.DB.First(&loan, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "loan not found", nil)
		return
	}
	if loan.Status != models.StatusPending {
		utils.Error(c, http.StatusUnprocessableEntity, "only pending loans can be decided", nil)
		return
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"status":         newStatus,
		"approved_by_id": adminID,
		"approved_at":    now,
	}
	if err := config.DB.Model(&loan).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update loan", err)
		return
	}

	service.LogActivity(config.DB, adminID, "loan."+newStatus, "loan", loan.ID,
		fmt.Sprintf("loan of %s for member %d", loan.Principal.StringFixed(2), loan.MemberID))
	utils.Success(c, message, gin.H{"id": loan.ID, "status": newStatus})
}
