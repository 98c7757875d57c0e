package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/service"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

type MemberCreateInput struct {
	MemberNumber string `json:"member_number" binding:"required"`
	StaffID      string `json:"staff_id"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

func MemberCreate(c *gin.Context) {
	var in MemberCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var exists models.Member
	if err := config.DB.Where("member_number = ?", in.MemberNumber).First(&exists).Error; err == nil {
		utils.Error(c, http.StatusBadRequest, "member number already taken", nil)
		return
	}

	member := models.Member{
		UUID:         uuid.NewString(),
		MemberNumber: in.MemberNumber,
		StaffID:      in.StaffID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		IsActive:     true,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create member", err)
		return
	}
	utils.Success(c, "member created", member)
}

func MemberList(c *gin.Context) {
	var rows []models.Member
	q := config.DB.Order("last_name ASC, first_name ASC")

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"member_number ILIKE ? OR staff_id ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			like, like, like, like,
		)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch members", err)
		return
	}
	utils.Success(c, "members", rows)
}

func MemberDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var member models.Member
	if err := config.DB.First(&member, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "member not found", nil)
		return
	}
	utils.Success(c, "member", member)
}

// MemberResolve looks a member up the same way the bulk importer does:
// by UUID, member number or staff ID.
func MemberResolve(c *gin.Context) {
	key := c.Query("key")
	member, err := service.ResolveMember(config.DB, key)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.Success(c, "member", member)
}
