package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/app/services"
	"github.com/yigit/classpoints/internal/middleware"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
)

// AuthController handles student sessions and the admin passphrase check
type AuthController struct {
	authService *services.AuthService
	adminGate   *services.AdminGate
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, adminGate *services.AdminGate) *AuthController {
	return &AuthController{
		authService: authService,
		adminGate:   adminGate,
	}
}

// Login authenticates a student
// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.authService.Login(ctx, req.Name, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success:   true,
		Student:   session.Student,
		Token:     session.Token,
		ExpiresIn: session.ExpiresIn,
	})
}

// Me returns the logged-in student
// @Summary Current student
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Student
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, err := c.authService.CurrentStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// AdminLogin checks the admin passphrase so clients can unlock admin views
// @Summary Admin passphrase check
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Passphrase"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Admin password mismatch"
// @Router /admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.adminGate.Check(req.AdminPw); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
