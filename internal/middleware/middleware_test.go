package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router *gin.Engine, method, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("bad field"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.NewBadRequestError("nope"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"forbidden", apperrors.NewForbiddenError("admin password mismatch"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not found", fmt.Errorf("load: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"conflict", apperrors.NewConflictError("taken"), http.StatusConflict, dto.ErrorCodeConflict},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", func(c *gin.Context) { HandleAPIError(c, tt.err) })

			w := serve(t, router, http.MethodGet, "/")
			assert.Equal(t, tt.status, w.Code)
			body := errorBody(t, w)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, body.Error.Message, body.Message)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) { HandleAPIError(c, errors.New("secret dsn leaked")) })

	w := serve(t, router, http.MethodGet, "/")
	assert.NotContains(t, w.Body.String(), "secret dsn")
	assert.Equal(t, dto.ErrorSeverityCritical, errorBody(t, w).Error.Severity)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(t, router, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, errorBody(t, w).Error.Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(t, router, http.MethodGet, "/")
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = serve(t, router, http.MethodGet, "/", RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", TokenExp: time.Hour, TokenIssuer: "test"})
	expired := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", TokenExp: -time.Minute, TokenIssuer: "test"})

	router := gin.New()
	router.GET("/me", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		id, ok := StudentIDFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": c.GetString(ContextStudentName)})
	})

	token, _, err := jwtService.GenerateToken(7, "Student 7")
	require.NoError(t, err)
	w := serve(t, router, http.MethodGet, "/me", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"name":"Student 7"}`, w.Body.String())

	w = serve(t, router, http.MethodGet, "/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, errorBody(t, w).Error.Code)

	w = serve(t, router, http.MethodGet, "/me", "Authorization", "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, router, http.MethodGet, "/me", "Authorization", "Bearer garbage")
	assert.Equal(t, dto.ErrorCodeInvalidToken, errorBody(t, w).Error.Code)

	old, _, err := expired.GenerateToken(7, "Student 7")
	require.NoError(t, err)
	w = serve(t, router, http.MethodGet, "/me", "Authorization", "Bearer "+old)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, errorBody(t, w).Error.Code)
}

func TestBindJSON(t *testing.T) {
	type body struct {
		StudentID int64 `json:"studentId" binding:"required,gt=0"`
	}
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var b body
		if !BindJSON(c, &b) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, errorBody(t, w).Success)
}
