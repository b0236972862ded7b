package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/app/services"
	"github.com/yigit/classpoints/internal/middleware"
)

// AttendanceController handles check-in endpoints
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// RecordAttendance checks a student in for today
// @Summary Record attendance
// @Description Awards points by arrival time. A second check-in on the same day returns success=false.
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.AttendanceRequest true "Student"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 400 {object} dto.ErrorResponse "Missing studentId"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	var req dto.AttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.attendanceService.Record(ctx, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !result.Recorded {
		ctx.JSON(http.StatusOK, dto.AttendanceResponse{Success: false, Message: result.Message})
		return
	}

	ctx.JSON(http.StatusOK, dto.AttendanceResponse{
		Success: true,
		Status:  result.Record.Status,
		Points:  result.Record.Points,
		Date:    result.Record.Date,
		Time:    result.Record.Time,
	})
}

// GetStudentAttendance lists a student's check-ins, newest first
// @Summary Attendance history
// @Tags attendance
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance/{studentId} [get]
func (c *AttendanceController) GetStudentAttendance(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	records, err := c.attendanceService.History(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// GetTodayAttendance returns the seat-by-seat board for today
// @Summary Today's attendance board
// @Tags attendance
// @Produce json
// @Success 200 {array} models.TodayEntry
// @Router /today-attendance [get]
func (c *AttendanceController) GetTodayAttendance(ctx *gin.Context) {
	board, err := c.attendanceService.Today(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, board)
}
