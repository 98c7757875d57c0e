package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/config"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/service"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

// RepaymentBulkUpload ingests a CSV of repayments for the given kind.
// Partial success is success: the batch returns 200 with per-row errors
// as long as at least one row posted.
func RepaymentBulkUpload(kind models.ObligationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := currentAdminID(c)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "file is required", err)
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "could not open uploaded file", err)
			return
		}
		defer f.Close()

		reader := csv.NewReader(f)
		// column-count checks are per row, with row-level errors
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "could not parse file", err)
			return
		}
		if len(records) < 2 {
			utils.Error(c, http.StatusBadRequest, "file has no data rows", nil)
			return
		}

		result := service.ImportRepayments(config.DB, kind, records[0], records[1:], adminID)

		logrus.WithFields(logrus.Fields{
			"kind":       kind,
			"total":      result.Total,
			"successful": result.Successful,
			"failed":     result.Failed,
		}).Info("bulk repayment upload processed")
		service.LogActivity(config.DB, adminID, "repayment.bulk_upload", string(kind), 0,
			fmt.Sprintf("%s: %d ok, %d failed", fileHeader.Filename, result.Successful, result.Failed))

		if result.Total > 0 && result.Successful == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "all rows failed",
				"data":    result,
			})
			return
		}
		utils.Success(c, "bulk repayment upload processed", result)
	}
}
