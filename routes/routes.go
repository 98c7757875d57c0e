package routes

import (
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/controllers"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/middlewares"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/register", controllers.AdminRegister)
			admin.POST("/login", controllers.AdminLogin)

			adminAuth := admin.Group("/", middlewares.AdminAuth())

			members := adminAuth.Group("/members")
			{
				members.GET("/", controllers.MemberList)
				members.GET("/resolve", controllers.MemberResolve)
				members.GET("/:id", controllers.MemberDetail)
				members.POST("/", controllers.MemberCreate)
			}

			loans := adminAuth.Group("/loans")
			{
				loans.GET("/", controllers.LoanList)
				loans.POST("/", controllers.LoanCreate)
				loans.GET("/:id", controllers.LoanDetail)
				loans.POST("/:id/approve", controllers.LoanApprove)
				loans.POST("/:id/reject", controllers.LoanReject)

				loans.POST("/:id/repayments", controllers.RepaymentPost(models.KindLoan))
				loans.GET("/:id/repayments", controllers.RepaymentHistory(models.KindLoan))
				loans.GET("/:id/repayments/schedule", controllers.RepaymentSchedule(models.KindLoan))
				loans.GET("/:id/repayments/next-payment", controllers.RepaymentNext(models.KindLoan))
				loans.POST("/repayments/bulk-upload", controllers.RepaymentBulkUpload(models.KindLoan))
			}

			mortgages := adminAuth.Group("/mortgages")
			{
				mortgages.GET("/", controllers.MortgageList)
				mortgages.POST("/", controllers.MortgageCreate)
				mortgages.GET("/:id", controllers.MortgageDetail)
				mortgages.POST("/:id/approve", controllers.MortgageApprove)
				mortgages.POST("/:id/reject", controllers.MortgageReject)
				mortgages.POST("/:id/schedule/approve", controllers.MortgageApproveSchedule)

				mortgages.POST("/:id/repayments", controllers.RepaymentPost(models.KindMortgage))
				mortgages.GET("/:id/repayments", controllers.RepaymentHistory(models.KindMortgage))
				mortgages.GET("/:id/repayments/schedule", controllers.RepaymentSchedule(models.KindMortgage))
				mortgages.GET("/:id/repayments/next-payment", controllers.RepaymentNext(models.KindMortgage))
				mortgages.POST("/repayments/bulk-upload", controllers.RepaymentBulkUpload(models.KindMortgage))
			}

			plans := adminAuth.Group("/mortgage-plans")
			{
				plans.GET("/", controllers.PlanList)
				plans.POST("/", controllers.PlanCreate)
				plans.GET("/:id", controllers.PlanDetail)
				plans.POST("/:id/approve", controllers.PlanApprove)
				plans.POST("/:id/reject", controllers.PlanReject)
				plans.POST("/:id/schedule/approve", controllers.PlanApproveSchedule)

				plans.POST("/:id/repayments", controllers.RepaymentPost(models.KindPlan))
				plans.GET("/:id/repayments", controllers.RepaymentHistory(models.KindPlan))
				plans.GET("/:id/repayments/schedule", controllers.RepaymentSchedule(models.KindPlan))
				plans.GET("/:id/repayments/next-payment", controllers.RepaymentNext(models.KindPlan))
				plans.POST("/repayments/bulk-upload", controllers.RepaymentBulkUpload(models.KindPlan))
			}

			properties := adminAuth.Group("/properties")
			{
				properties.GET("/", controllers.PropertyList)
				properties.POST("/", controllers.PropertyCreate)
				properties.GET("/:id/transactions", controllers.PropertyTransactions)
				properties.POST("/:id/interests/approve", controllers.PropertyInterestApprove)
			}

			adminAuth.GET("/activity-logs", controllers.ActivityLogList)
		}
	}
}
