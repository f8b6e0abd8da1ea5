package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type EnrollRequest = validator.EnrollRequest
type LoginRequest = validator.LoginRequest
type ListCoursesRequest = validator.ListCoursesRequest

type CourseResponse struct {
	*models.Course
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

type EnrollmentListResponse struct {
	Enrollments []*models.Enrollment `json:"enrollments"`
	Total       int64                `json:"total"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ===== SERVICE INTERFACES =====

// CourseService covers course mutation and the read/query surface for
// courses and users
type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, actorID string) (*CourseResponse, error)
	Update(ctx context.Context, id string, req *UpdateCourseRequest, actorID string) (*CourseResponse, error)

	// GetByID returns (nil, nil) when the course does not exist
	GetByID(ctx context.Context, id string) (*CourseResponse, error)
	List(ctx context.Context, req *ListCoursesRequest) (*CourseListResponse, error)

	// GetUser returns (nil, nil) when the user does not exist
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetCourseStats returns (nil, nil) when the course does not exist
	GetCourseStats(ctx context.Context, id string) (*repositories.CourseStats, error)

	// GetInstructorStats returns (nil, nil) when no professor has the id
	GetInstructorStats(ctx context.Context, instructorID string) (*repositories.InstructorStats, error)
}

// EnrollmentService covers the append-only enrollment relation
type EnrollmentService interface {
	Enroll(ctx context.Context, req *EnrollRequest, actorID string) (*models.Enrollment, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)

	// GetByPair returns (nil, nil) when no enrollment exists for the pair
	GetByPair(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) (*EnrollmentListResponse, error)
}

// AuthService is the placeholder session authentication layer. Login
// verifies against a demo password literal; this is not a security
// mechanism.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// ExportService produces downloadable artifacts
type ExportService interface {
	ExportRoster(ctx context.Context, courseID, actorID string) ([]byte, error)
}

// ServiceManager wires up and owns all services
type ServiceManager interface {
	Course() CourseService
	Enrollment() EnrollmentService
	Auth() AuthService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
