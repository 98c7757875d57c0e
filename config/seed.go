package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

// SeedDefaultAdmin creates the bootstrap admin account when the table is
// empty. Credentials come from the environment so deployments never ship
// the defaults.
func SeedDefaultAdmin() {
	var cnt int64
	DB.Model(&models.Admin{}).Count(&cnt)
	if cnt > 0 {
		return
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if username == "" || password == "" {
		username = "admin"
		password = "admin12345"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Warn("seed admin skipped")
		return
	}
	admin := models.Admin{
		Username:     username,
		FullName:     "System Administrator",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		logrus.WithError(err).Warn("seed admin failed")
		return
	}
	logrus.WithField("username", username).Info("seeded default admin")
}
