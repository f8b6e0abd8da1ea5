package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

// Enroll enrolls a user in a course
// @Summary Enroll in a course
// @Description Enroll the actor (or, for professors, another user) in a course. A duplicate enrollment is a 409.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body validator.EnrollRequest true "Enrollment data"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "User or course not found"
// @Failure 409 {object} ErrorResponse "Already enrolled"
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Enrollment request", "course_id", req.CourseID, "actor_id", actorID)

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleServiceError(c, err, "enroll")
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// GetEnrollment retrieves the enrollment for a (user, course) pair
// @Summary Get enrollment by pair
// @Tags enrollments
// @Produce json
// @Param user_id path string true "User ID"
// @Param course_id path string true "Course ID"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} ErrorResponse "Not enrolled"
// @Router /enrollments/{user_id}/{course_id} [get]
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	userID := c.Param("user_id")
	courseID := c.Param("course_id")

	enrollment, err := h.enrollmentService.GetByPair(c.Request.Context(), userID, courseID)
	if err != nil {
		h.HandleServiceError(c, err, "get enrollment")
		return
	}

	if enrollment == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Enrollment not found",
		})
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// MyEnrollments lists the authenticated user's enrollments
// @Summary My enrollments
// @Tags enrollments
// @Produce json
// @Success 200 {object} services.EnrollmentListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me/enrollments [get]
func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	resp, err := h.enrollmentService.ListByUser(c.Request.Context(), actorID)
	if err != nil {
		h.HandleServiceError(c, err, "list enrollments")
		return
	}

	c.JSON(http.StatusOK, resp)
}
