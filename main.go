package main

import (
	"os"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/routes"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.Member{},
		&models.Loan{},
		&models.Mortgage{},
		&models.InternalMortgagePlan{},
		&models.Repayment{},
		&models.Property{},
		&models.PropertyInterest{},
		&models.PropertyPaymentPlan{},
		&models.PropertyPaymentTransaction{},
		&models.Notification{},
		&models.ActivityLog{},
	)

	config.SeedDefaultAdmin()

	if s := os.Getenv("ADMIN_JWT_SECRET"); s != "" {
		utils.AdminSecret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "SmartHousing API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
