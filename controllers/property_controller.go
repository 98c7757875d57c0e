package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

type PropertyCreateInput struct {
	Title    string          `json:"title" binding:"required"`
	Code     string          `json:"code" binding:"required"`
	Location string          `json:"location"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

func PropertyCreate(c *gin.Context) {
	var in PropertyCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		utils.Error(c, http.StatusBadRequest, "price must be greater than zero", nil)
		return
	}

	property := models.Property{
		Title:       in.Title,
		Code:        in.Code,
		Location:    in.Location,
		Price:       in.Price,
		IsAvailable: true,
	}
	if err := config.DB.Create(&property).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create property", err)
		return
	}
	utils.Success(c, "property created", property)
}

func PropertyList(c *gin.Context) {
	var rows []models.Property
	q := config.DB.Order("created_at DESC, id DESC")

	if avail := c.Query("is_available"); avail != "" {
		q = q.Where("is_available = ?", avail)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch properties", err)
		return
	}
	utils.Success(c, "properties", rows)
}

// PropertyTransactions lists the bridged payment-plan ledger for a
// property, newest first, optionally filtered by member or source.
func PropertyTransactions(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var property models.Property
	if err := config.DB.Select("id").First(&property, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "property not found", nil)
		return
	}

	var rows []models.PropertyPaymentTransaction
	q := config.DB.Where("property_id = ?", property.ID).Order("created_at DESC, id DESC")

	if memberID := c.Query("member_id"); memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}
	if source := c.Query("source"); source != "" {
		q = q.Where("source = ?", source)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch transactions", err)
		return
	}
	utils.Success(c, "property transactions", rows)
}

type PropertyInterestInput struct {
	MemberID uint `json:"member_id" binding:"required"`
}

// PropertyInterestApprove registers (or approves) a member's interest in
// a property and opens its payment plan.
func PropertyInterestApprove(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in PropertyInterestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var property models.Property
	if err := config.DB.First(&property, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "property not found", nil)
		return
	}
	var member models.Member
	if err := config.DB.First(&member, in.MemberID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "member not found", nil)
		return
	}

	var interest models.PropertyInterest
	err := config.DB.
		Where("property_id = ? AND member_id = ?", property.ID, member.ID).
		First(&interest).Error
	if err != nil {
		interest = models.PropertyInterest{
			PropertyID: property.ID,
			MemberID:   member.ID,
			Status:     models.InterestStatusApproved,
		}
		if err := config.DB.Create(&interest).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to record interest", err)
			return
		}
	} else if err := config.DB.Model(&interest).Update("status", models.InterestStatusApproved).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to approve interest", err)
		return
	}

	// open the payment plan if it does not exist yet
	var plan models.PropertyPaymentPlan
	if err := config.DB.
		Where("property_id = ? AND member_id = ?", property.ID, member.ID).
		First(&plan).Error; err != nil {
		plan = models.PropertyPaymentPlan{
			PropertyID:  property.ID,
			MemberID:    member.ID,
			TotalAmount: property.Price,
			AmountPaid:  decimal.Zero,
		}
		if err := config.DB.Create(&plan).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to open payment plan", err)
			return
		}
	}

	utils.Success(c, "property interest approved", gin.H{"interest": interest, "plan": plan})
}
