package controllers

import (
	"net/http"
	"time"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminRegisterInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func AdminRegister(c *gin.Context) {
	var in AdminRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var exists models.Admin
	if err := config.DB.Where("username = ?", in.Username).First(&exists).Error; err == nil {
		utils.Error(c, http.StatusBadRequest, "username already taken", nil)
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	admin := models.Admin{
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create admin", err)
		return
	}

	utils.Success(c, "admin created", gin.H{"username": admin.Username})
}

type AdminLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func AdminLogin(c *gin.Context) {
	var in AdminLoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&admin).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "admin not found", nil)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "wrong password", nil)
		return
	}

	now := time.Now().UTC()
	config.DB.Model(&admin).Update("last_login_at", now)

	token, _ := utils.GenerateAdminToken(admin.ID, admin.Username, 24*time.Hour)
	utils.Success(c, "login successful", gin.H{"token": token})
}
