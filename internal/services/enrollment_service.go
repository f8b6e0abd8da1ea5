package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type enrollmentService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// Enroll registers a user in a course. Uniqueness of the (user, course)
// pair is enforced by the storage layer's unique index: the insert is a
// single constrained statement, and a duplicate comes back as
// ErrAlreadyEnrolled. There is no check-then-insert window and no retry; a
// conflict is terminal.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest, actorID string) (*models.Enrollment, error) {
	if errs := s.validator.GetBusinessValidator().ValidateEnroll(req); len(errs) > 0 {
		return nil, errs
	}

	userID := req.UserID
	if userID == "" {
		userID = actorID
	}

	s.logger.Info("Enrolling user", "user_id", userID, "course_id", req.CourseID, "actor_id", actorID)

	// Enrolling someone else requires the professor role
	if userID != actorID {
		isProfessor, err := s.repo.User().HasRole(ctx, nil, actorID, models.RoleProfessor)
		if err != nil {
			return nil, fmt.Errorf("permission check failed: %w", err)
		}
		if !isProfessor {
			return nil, NewPermissionError(actorID, req.CourseID, "enrollment", "create", "only professors may enroll other users")
		}
	}

	// Referential checks are ordinary reads; they are not the uniqueness
	// guard and their failure modes are NotFound, not Conflict
	userExists, err := s.repo.User().ExistsByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	courseExists, err := s.repo.Course().ExistsByID(ctx, nil, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !courseExists {
		return nil, ErrCourseNotFound
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: req.CourseID,
	}

	if err := s.repo.Enrollment().Create(ctx, nil, enrollment); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("User enrolled", "enrollment_id", enrollment.ID, "user_id", userID, "course_id", req.CourseID)

	s.publishEnrollmentEvent(ctx, enrollment)

	// Reload joined with user and course for the response
	created, err := s.repo.Enrollment().GetByID(ctx, nil, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}

	return created, nil
}

// IsEnrolled reports current enrollment state. Always a fresh query; a
// stale answer here would be a correctness bug, not a performance issue.
func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	return s.repo.Enrollment().ExistsByPair(ctx, nil, userID, courseID)
}

// GetByPair returns the enrollment for the pair, or (nil, nil) when the
// user is not enrolled in the course
func (s *enrollmentService) GetByPair(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByPair(ctx, nil, userID, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment, nil
}

// ListByUser returns all of a user's enrollments with their courses
func (s *enrollmentService) ListByUser(ctx context.Context, userID string) (*EnrollmentListResponse, error) {
	enrollments, total, err := s.repo.Enrollment().ListByUser(ctx, nil, userID, repositories.EnrollmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return &EnrollmentListResponse{
		Enrollments: enrollments,
		Total:       total,
	}, nil
}

// publishEnrollmentEvent emits enrollment.created. Best-effort; the
// enrollment is already committed.
func (s *enrollmentService) publishEnrollmentEvent(ctx context.Context, enrollment *models.Enrollment) {
	event := events.NewEvent(events.EventEnrollmentCreated, events.EnrollmentEvent{
		EnrollmentID: enrollment.ID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		EnrolledAt:   enrollment.CreatedAt,
	})

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish enrollment event", "enrollment_id", enrollment.ID, "error", err)
	}
}
