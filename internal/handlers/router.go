package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	userHandler       *UserHandler
	authMiddleware    *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(serviceManager.Auth())

	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), serviceManager.Export(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		userHandler:       NewUserHandler(serviceManager.Course(), userRepo, logger),
		authMiddleware:    authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes; login is the only unauthenticated API endpoint
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Logout)
			auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
		}

		authenticated := v1.Group("")
		authenticated.Use(hm.authMiddleware.AuthMiddleware())
		{
			// Course routes
			courses := authenticated.Group("/courses")
			{
				// Mutation - professors only (services re-check against the
				// persisted role)
				courses.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.courseHandler.CreateCourse)
				courses.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.courseHandler.UpdateCourse)
				courses.GET("/:id/roster/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.courseHandler.ExportRoster)

				// Query - all authenticated users
				courses.GET("", hm.courseHandler.ListCourses)
				courses.GET("/:id", hm.courseHandler.GetCourse)
				courses.GET("/:id/stats", hm.courseHandler.GetCourseStats)
			}

			// Enrollment routes
			enrollments := authenticated.Group("/enrollments")
			{
				enrollments.POST("", hm.enrollmentHandler.Enroll)
				enrollments.GET("/:user_id/:course_id", hm.enrollmentHandler.GetEnrollment)
			}

			// User routes
			users := authenticated.Group("/users")
			{
				users.GET("", hm.userHandler.ListUsers)
				users.GET("/me/enrollments", hm.enrollmentHandler.MyEnrollments)
				users.GET("/:id", hm.userHandler.GetUser)
				users.GET("/:id/stats", hm.userHandler.GetUserStats)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "course-service",
		})
	})
}
