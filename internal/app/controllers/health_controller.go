package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/db"
)

// HealthController reports liveness and store reachability
type HealthController struct {
	database *db.Database
}

// NewHealthController creates a new HealthController
func NewHealthController(database *db.Database) *HealthController {
	return &HealthController{database: database}
}

// Health pings the store
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.database.DB.PingContext(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: string(c.database.Dialect)})
}

// Ping answers pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
