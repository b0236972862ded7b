package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/services"
	"github.com/yigit/classpoints/internal/middleware"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
)

// ExportController handles attendance exports
type ExportController struct {
	exportService services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService services.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportMonth downloads the monthly attendance grid as CSV, or as JSON with ?format=json
// @Summary Monthly attendance export
// @Tags export
// @Produce text/csv
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid year or month"
// @Router /export/{year}/{month} [get]
func (c *ExportController) ExportMonth(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("year must be a number"))
		return
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("month must be a number"))
		return
	}

	report, err := c.exportService.Monthly(ctx, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if ctx.Query("format") == "json" {
		ctx.JSON(http.StatusOK, report)
		return
	}

	var buf bytes.Buffer
	if err := c.exportService.WriteCSV(&buf, report); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+report.Filename()+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

