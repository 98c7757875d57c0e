package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func currentAdminID(c *gin.Context) (uint, error) {
	v, ok := c.Get("admin_id")
	if !ok {
		return 0, errors.New("admin_id not in context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("invalid admin_id")
	}
	return id, nil
}
