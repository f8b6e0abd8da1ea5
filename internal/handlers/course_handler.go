package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	exportService services.ExportService
}

func NewCourseHandler(courseService services.CourseService, exportService services.ExportService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
		exportService: exportService,
	}
}

// CreateCourse creates a new course
// @Summary Create course
// @Description Create a course; the actor must hold the professor role
// @Tags courses
// @Accept json
// @Produce json
// @Param request body validator.CourseCreateRequest true "Course data"
// @Success 201 {object} services.CourseResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating course", "actor_id", actorID, "title", req.Title)

	course, err := h.courseService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleServiceError(c, err, "create course")
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateCourse applies a partial update to a course
// @Summary Update course
// @Description Partially update a course; only the instructor may do this
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body validator.CourseUpdateRequest true "Fields to change"
// @Success 200 {object} services.CourseResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	courseID := c.Param("id")

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating course", "course_id", courseID, "actor_id", actorID)

	course, err := h.courseService.Update(c.Request.Context(), courseID, &req, actorID)
	if err != nil {
		h.HandleServiceError(c, err, "update course")
		return
	}

	c.JSON(http.StatusOK, course)
}

// GetCourse retrieves a course with instructor and enrollments
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} services.CourseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID := c.Param("id")

	course, err := h.courseService.GetByID(c.Request.Context(), courseID)
	if err != nil {
		h.HandleServiceError(c, err, "get course")
		return
	}

	// Absence is not an error at the service layer; here it is a 404
	if course == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Course not found",
		})
		return
	}

	c.JSON(http.StatusOK, course)
}

// ListCourses lists courses with filters and pagination
// @Summary List courses
// @Tags courses
// @Produce json
// @Param level query string false "Filter by level (Beginner, Intermediate, Advanced)"
// @Param instructor_id query string false "Filter by instructor"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} services.CourseListResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	req := h.parseListRequest(c)

	resp, err := h.courseService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err, "list courses")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCourseStats returns enrollment statistics for a course
// @Summary Course statistics
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} repositories.CourseStats
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id}/stats [get]
func (h *CourseHandler) GetCourseStats(c *gin.Context) {
	courseID := c.Param("id")

	stats, err := h.courseService.GetCourseStats(c.Request.Context(), courseID)
	if err != nil {
		h.HandleServiceError(c, err, "get course stats")
		return
	}

	if stats == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Course not found",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportRoster streams the course roster as an xlsx workbook
// @Summary Export course roster
// @Description Download the enrollee roster; only the instructor may export
// @Tags courses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Course ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id}/roster/export [get]
func (h *CourseHandler) ExportRoster(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	courseID := c.Param("id")

	h.LogRequest(c, "Exporting roster", "course_id", courseID, "actor_id", actorID)

	data, err := h.exportService.ExportRoster(c.Request.Context(), courseID, actorID)
	if err != nil {
		h.HandleServiceError(c, err, "export roster")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=roster-%s.xlsx", courseID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== HELPER METHODS =====

func (h *CourseHandler) parseListRequest(c *gin.Context) *services.ListCoursesRequest {
	req := &services.ListCoursesRequest{
		Limit:     20,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if level := c.Query("level"); level != "" {
		l := models.CourseLevel(level)
		req.Level = &l
	}

	if instructorID := c.Query("instructor_id"); instructorID != "" {
		req.InstructorID = &instructorID
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			req.Limit = limit
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			req.Offset = offset
		}
	}

	return req
}
