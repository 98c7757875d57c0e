package service

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

// NotifyMember writes a member notification. Fire-and-forget: a failure
// is logged and swallowed, it never affects the triggering operation.
func NotifyMember(db *gorm.DB, memberID uint, title, body string) {
	n := models.Notification{
		MemberID: memberID,
		Title:    title,
		Body:     body,
	}
	if err := db.Create(&n).Error; err != nil {
		logrus.WithError(err).WithField("member_id", memberID).Warn("notification dispatch failed")
	}
}

// LogActivity records an audit row for an admin action. Best-effort as
// well, but callers inside a transaction get it committed atomically
// with the action itself.
func LogActivity(db *gorm.DB, adminID uint, action, entityType string, entityID uint, detail string) {
	row := models.ActivityLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := db.Create(&row).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Warn("activity log write failed")
	}
}
