package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"
)

// respondLedgerError maps ledger errors onto HTTP responses. Business
// rejections go back verbatim (422); not-found is 404; anything else is
// a system error: logged in full, surfaced as a generic message.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(c, http.StatusNotFound, "record not found", err)
	case errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrScheduleNotApproved),
		errors.Is(err, models.ErrAlreadySettled),
		errors.Is(err, models.ErrAllocationMismatch),
		errors.Is(err, models.ErrExceedsBalance),
		errors.Is(err, models.ErrExceedsPrincipal),
		errors.Is(err, models.ErrDuplicateReference):
		utils.Error(c, http.StatusUnprocessableEntity, "repayment rejected", err)
	default:
		logrus.WithError(err).Error("ledger operation failed")
		utils.Error(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}
