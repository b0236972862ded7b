package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	message := apperrors.MessageOf(err)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWith(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message))
	case errors.Is(err, apperrors.ErrBadRequest):
		abortWith(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		abortWith(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWith(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		abortWith(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message))
	case errors.Is(err, apperrors.ErrConflict):
		abortWith(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, message))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message))
	case errors.Is(err, apperrors.ErrTokenExpired):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, message))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message))
	default:
		logger.Error().Err(err).
			Str("path", c.FullPath()).
			Str("requestID", GetRequestID(c)).
			Msg("Unhandled error")
		abortWith(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func abortWith(c *gin.Context, status int, detail *dto.ErrorDetail) {
	if status >= http.StatusInternalServerError {
		detail.WithSeverity(dto.ErrorSeverityCritical)
	} else if status == http.StatusNotFound {
		detail.WithSeverity(dto.ErrorSeverityWarning)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// Recovery turns panics into a 500 error response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("requestID", GetRequestID(c)).
			Msg("Recovered from panic")
		abortWith(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	})
}
