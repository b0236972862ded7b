package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/controllers"
	"github.com/yigit/classpoints/internal/middleware"
	"github.com/yigit/classpoints/internal/pkg/metrics"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	attendanceController *controllers.AttendanceController,
	storeController *controllers.StoreController,
	seatingController *controllers.SeatingController,
	exportController *controllers.ExportController,
	authController *controllers.AuthController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", healthController.Ping)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	api.GET("/health", healthController.Health)

	// --- Students ---
	students := api.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent) // admin passphrase in body
	}

	// --- Seating ---
	api.GET("/seating", seatingController.GetSeating)
	api.POST("/seating", seatingController.ReplaceSeating) // admin passphrase in body

	// --- Attendance ---
	api.POST("/attendance", attendanceController.RecordAttendance)
	api.GET("/attendance/:studentId", attendanceController.GetStudentAttendance)
	api.GET("/today-attendance", attendanceController.GetTodayAttendance)

	// --- Store ---
	api.GET("/items", storeController.GetItems)
	api.POST("/items", storeController.CreateItem) // admin passphrase in body
	api.POST("/buy", storeController.Buy)
	api.GET("/purchases/:studentId", storeController.GetPurchases)

	// --- Export ---
	api.GET("/export/:year/:month", exportController.ExportMonth)

	// --- Auth ---
	api.POST("/login", authController.Login)
	api.POST("/admin/login", authController.AdminLogin)

	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/me", authController.Me)
	}
}
