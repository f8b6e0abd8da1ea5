package repositories

import (
	"time"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	Level        *string    `json:"level"`
	InstructorID *string    `json:"instructor_id"`
	DateFrom     *time.Time `json:"date_from"`
	DateTo       *time.Time `json:"date_to"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
	SortBy       string     `json:"sort_by"`    // "created_at", "title", "level"
	SortOrder    string     `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Query  string // Search query for name or email
	Limit  int    // Page size
	Offset int    // Offset for pagination
}

type EnrollmentFilters struct {
	UserID   *string    `json:"user_id"`
	CourseID *string    `json:"course_id"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type CourseStats struct {
	EnrollmentCount int        `json:"enrollment_count"`
	LastEnrolledAt  *time.Time `json:"last_enrolled_at"`
}

type InstructorStats struct {
	TotalCourses     int `json:"total_courses"`
	TotalEnrollments int `json:"total_enrollments"`
}
