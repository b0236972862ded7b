package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/app/services"
	"github.com/yigit/classpoints/internal/middleware"
)

// SeatingController handles the seating chart
type SeatingController struct {
	seatingService services.SeatingService
}

// NewSeatingController creates a new SeatingController
func NewSeatingController(seatingService services.SeatingService) *SeatingController {
	return &SeatingController{
		seatingService: seatingService,
	}
}

// GetSeating returns all 36 seats with their occupants
// @Summary Seating chart
// @Tags seating
// @Produce json
// @Success 200 {array} models.Seat
// @Router /seating [get]
func (c *SeatingController) GetSeating(ctx *gin.Context) {
	seats, err := c.seatingService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, seats)
}

// ReplaceSeating replaces the whole chart (admin)
// @Summary Replace seating chart
// @Tags seating
// @Accept json
// @Produce json
// @Param request body dto.SeatingRequest true "Seating"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed seating"
// @Failure 403 {object} dto.ErrorResponse "Admin password mismatch"
// @Router /seating [post]
func (c *SeatingController) ReplaceSeating(ctx *gin.Context) {
	var req dto.SeatingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.seatingService.Replace(ctx, req.AdminPw, req.Seating); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
