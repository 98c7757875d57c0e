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

type PlanCreateInput struct {
	MemberID     uint            `json:"member_id" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months" binding:"required,min=1"`
	Frequency    string          `json:"frequency"`
	StartDate    string          `json:"start_date"`
	PropertyID   *uint           `json:"property_id"`
}

func validFrequency(f string) bool {
	switch f {
	case models.FrequencyMonthly, models.FrequencyQuarterly, models.FrequencyBiannually, models.FrequencyAnnually:
		return true
	}
	return false
}

func PlanCreate(c *gin.Context) {
	var in PlanCreateInput
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
	if in.Frequency == "" {
		in.Frequency = models.FrequencyMonthly
	}
	if !validFrequency(in.Frequency) {
		utils.Error(c, http.StatusBadRequest, "invalid frequency (monthly/quarterly/biannually/annually)", nil)
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

	perYear := models.PeriodsPerYearFor(in.Frequency)
	periods := in.TermMonths / (12 / perYear)
	if periods < 1 {
		periods = 1
	}

	plan := models.InternalMortgagePlan{
		MemberID:        in.MemberID,
		Principal:       in.Principal,
		InterestRate:    in.InterestRate,
		TermMonths:      in.TermMonths,
		Frequency:       in.Frequency,
		PeriodicPayment: service.PeriodicPayment(in.Principal, in.InterestRate, periods, perYear),
		Status:          models.StatusDraft,
		StartDate:       startDate,
		PropertyID:      in.PropertyID,
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create plan", err)
		return
	}
	utils.Success(c, "mortgage plan created", plan)
}

func PlanList(c *gin.Context) {
	var rows []models.InternalMortgagePlan
	q := config.DB.Preload("Member").Order("created_at DESC, id DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if memberID := c.Query("member_id"); memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch plans", err)
		return
	}
	utils.Success(c, "mortgage plans", rows)
}

func PlanDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var plan models.InternalMortgagePlan
	if err := config.DB.Preload("Member").First(&plan, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "plan not found", nil)
		return
	}

	balance, err := service.ObligationBalance(config.DB, &plan)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.Success(c, "mortgage plan", gin.H{"plan": plan, "balance": balance})
}

func PlanApprove(c *gin.Context) {
	decidePlan(c, models.StatusApproved, "plan approved")
}

func PlanReject(c *gin.Context) {
	decidePlan(c, models.StatusRejected, "plan rejected")
}

func decidePlan(c *gin.Context, newStatus, message string) {
	adminID, err := currentAdminID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var plan models.InternalMortgagePlan
	if err := config.DB.First(&plan, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "plan not found", nil)
		return
	}
	if plan.Status != models.StatusDraft {
		utils.Error(c, http.StatusUnprocessableEntity, "only draft plans can be decided", nil)
		return
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"status":         newStatus,
		"approved_by_id": adminID,
		"approved_at":    now,
	}
	if err := config.DB.Model(&plan).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update plan", err)
		return
	}

	service.LogActivity(config.DB, adminID, "plan."+newStatus, "plan", plan.ID,
		fmt.Sprintf("plan of %s for member %d", plan.Principal.StringFixed(2), plan.MemberID))
	service.NotifyMember(config.DB, plan.MemberID, "Mortgage plan "+newStatus,
		fmt.Sprintf("Your mortgage plan of %s has been %s.", plan.Principal.StringFixed(2), newStatus))
	utils.Success(c, message, gin.H{"id": plan.ID, "status": newStatus})
}

func PlanApproveSchedule(c *gin.Context) {
	adminID, err := currentAdminID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var plan models.InternalMortgagePlan
	if err := config.DB.First(&plan, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "plan not found", nil)
		return
	}
	if plan.Status != models.StatusApproved && plan.Status != models.StatusActive {
		utils.Error(c, http.StatusUnprocessableEntity, "plan must be approved first", nil)
		return
	}

	if err := config.DB.Model(&plan).Update("schedule_approved", true).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to approve schedule", err)
		return
	}
	service.LogActivity(config.DB, adminID, "plan.schedule_approved", "plan", plan.ID, "")
	utils.Success(c, "repayment schedule approved", gin.H{"id": plan.ID, "schedule_approved": true})
}
