package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

func ActivityLogList(c *gin.Context) {
	var rows []models.ActivityLog
	q := config.DB.Order("created_at DESC, id DESC")

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity_type"); entity != "" {
		q = q.Where("entity_type = ?", entity)
	}

	limit := 100
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	if err := q.Limit(limit).Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch activity logs", err)
		return
	}
	utils.Success(c, "activity logs", rows)
}
