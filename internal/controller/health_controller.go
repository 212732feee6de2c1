package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// HealthCheck reports degraded with 503 when the database is unreachable.
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	dbHealthy := false
	if sqlDB, err := c.DB.DB(); err == nil {
		dbHealthy = sqlDB.Ping() == nil
	}

	status := "healthy"
	dbStatus := "connected"
	code := http.StatusOK
	if !dbHealthy {
		status = "degraded"
		dbStatus = "error"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":   status,
		"message":  "ReviewIn API is running",
		"database": dbStatus,
	})
}
