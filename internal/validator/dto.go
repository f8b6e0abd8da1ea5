package validator

import (
	"github.com/SAP-F-2025/course-service/internal/models"
)

// CourseCreateRequest represents the request structure for creating courses.
// The instructor defaults to the authenticated actor; an explicit
// InstructorID must name another professor.
type CourseCreateRequest struct {
	Title       string             `json:"title" validate:"required,course_title"`
	Description *string            `json:"description" validate:"omitempty,course_description"`
	Level       models.CourseLevel `json:"level" validate:"required,course_level"`
	// InstructorID optionally assigns another professor; defaults to the actor
	InstructorID *string `json:"instructor_id" validate:"omitempty"`
}

// CourseUpdateRequest represents the request structure for updating courses.
// Nil fields are left untouched.
type CourseUpdateRequest struct {
	Title       *string             `json:"title" validate:"omitempty,course_title"`
	Description *string             `json:"description" validate:"omitempty,course_description"`
	Level       *models.CourseLevel `json:"level" validate:"omitempty,course_level"`
}

// EnrollRequest represents the request structure for enrolling in a course.
// UserID is optional; when empty the authenticated actor is enrolled.
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	UserID   string `json:"user_id" validate:"omitempty"`
}

// LoginRequest represents the request structure for the demo login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ListCoursesRequest represents query parameters for course listing
type ListCoursesRequest struct {
	Level        *models.CourseLevel `form:"level" validate:"omitempty,course_level"`
	InstructorID *string             `form:"instructor_id"`
	Limit        int                 `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset       int                 `form:"offset" validate:"omitempty,min=0"`
	SortBy       string              `form:"sort_by"`
	SortOrder    string              `form:"sort_order"`
}
