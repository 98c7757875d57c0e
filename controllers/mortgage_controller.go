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

type MortgageCreateInput struct {
	MemberID     uint            `json:"member_id" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermYears    int             `json:"term_years" binding:"required,min=1"`
	Lender       string          `json:"lender"`
	StartDate    string          `json:"start_date"`
	PropertyID   *uint           `json:"property_id"`
}

func MortgageCreate(c *gin.Context) {
	var in MortgageCreateInput
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

	mortgage := models.Mortgage{
		MemberID:        in.MemberID,
		Principal:       in.Principal,
		InterestRate:    in.InterestRate,
		TermYears:       in.TermYears,
		PeriodicPayment: service.PeriodicPayment(in.Principal, in.InterestRate, in.TermYears*12, 12),
		Lender:          in.Lender,
		Status:          models.StatusPending,
		StartDate:       startDate,
		PropertyID:      in.PropertyID,
	}

	if err := config.DB.Create(&mortgage).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create mortgage", err)
		return
	}
	utils.Success(c, "mortgage application submitted", mortgage)
}

func MortgageList(c *gin.Context) {
	var rows []models.Mortgage
	q := config.DB.Preload("Member").Order("created_at DESC, id DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if memberID := c.Query("member_id"); memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch mortgages", err)
		return
	}
	utils.Success(c, "mortgages", rows)
}

func MortgageDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var mortgage models.Mortgage
	if err := config.DB.Preload("Member").First(&mortgage, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "mortgage not found", nil)
		return
	}

	balance, err := service.ObligationBalance(config.DB, &mortgage)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.Success(c, "mortgage", gin.H{"mortgage": mortgage, "balance": balance})
}

func MortgageApprove(c *gin.Context) {
	decideMortgage(c, models.StatusApproved, "mortgage approved")
}

func MortgageReject(c *gin.Context) {
	decideMortgage(c, models.StatusRejected, "mortgage rejected")
}

func decideMortgage(c *gin.Context, newStatus, message string) {
	adminID, err := currentAdminID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var mortgage models.Mortgage
	if err := config.DB.First(&mortgage, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "mortgage not found", nil)
		return
	}
	if mortgage.Status != models.StatusPending {
		utils.Error(c, http.StatusUnprocessableEntity, "only pending mortgages can be decided", nil)
		return
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"status":         newStatus,
		"approved_by_id": adminID,
		"approved_at":    now,
	}
	if err := config.DB.Model(&mortgage).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update mortgage", err)
		return
	}

	service.LogActivity(config.DB, adminID, "mortgage."+newStatus, "mortgage", mortgage.ID,
		fmt.Sprintf("mortgage of %s for member %d", mortgage.Principal.StringFixed(2), mortgage.MemberID))
	service.NotifyMember(config.DB, mortgage.MemberID, "Mortgage "+newStatus,
		fmt.Sprintf("Your mortgage application of %s has been %s.", mortgage.Principal.StringFixed(2), newStatus))
	utils.Success(c, message, gin.H{"id": mortgage.ID, "status": newStatus})
}

// MortgageApproveSchedule flips the schedule gate; repayments may not
// post against a mortgage before this.
func MortgageApproveSchedule(c *gin.Context) {
	adminID, err := currentAdminID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var mortgage models.Mortgage
	if err := config.DB.First(&mortgage, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "mortgage not found", nil)
		return
	}
	if mortgage.Status != models.StatusApproved && mortgage.Status != models.StatusActive {
		utils.Error(c, http.StatusUnprocessableEntity, "mortgage must be approved first", nil)
		return
	}

	if err := config.DB.Model(&mortgage).Update("schedule_approved", true).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to approve schedule", err)
		return
	}
	service.LogActivity(config.DB, adminID, "mortgage.schedule_approved", "mortgage", mortgage.ID, "")
	utils.Success(c, "repayment schedule approved", gin.H{"id": mortgage.ID, "schedule_approved": true})
}
