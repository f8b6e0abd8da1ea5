package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type courseService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) CourseService {
	return &courseService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// ===== MUTATION OPERATIONS =====

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, actorID string) (*CourseResponse, error) {
	s.logger.Info("Creating course", "actor_id", actorID, "title", req.Title)

	// Validate request with business rules
	if errs := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(errs) > 0 {
		return nil, errs
	}

	// Authorization is checked here against the persisted role, never
	// against anything the client claims about itself
	isProfessor, err := s.repo.User().HasRole(ctx, nil, actorID, models.RoleProfessor)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !isProfessor {
		return nil, NewPermissionError(actorID, "", "course", "create", "professor role required")
	}

	instructorID := actorID
	if req.InstructorID != nil && *req.InstructorID != "" && *req.InstructorID != actorID {
		instructorID = *req.InstructorID
		instructorIsProfessor, err := s.repo.User().HasRole(ctx, nil, instructorID, models.RoleProfessor)
		if err != nil {
			return nil, fmt.Errorf("instructor check failed: %w", err)
		}
		if !instructorIsProfessor {
			return nil, validator.ValidationErrors{{
				Field:   "instructor_id",
				Message: "instructor must be an existing professor",
				Value:   instructorID,
				Rule:    "business_logic",
			}}
		}
	}

	course := &models.Course{
		Title:        req.Title,
		Level:        req.Level,
		InstructorID: instructorID,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}

	if err := s.repo.Course().Create(ctx, nil, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "instructor_id", instructorID)

	s.publishCourseEvent(ctx, events.EventCourseCreated, course)

	return s.getResponseByID(ctx, course.ID)
}

func (s *courseService) Update(ctx context.Context, id string, req *UpdateCourseRequest, actorID string) (*CourseResponse, error) {
	s.logger.Info("Updating course", "course_id", id, "actor_id", actorID)

	// Validate request with business rules
	if errs := s.validator.GetBusinessValidator().ValidateCourseUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	isProfessor, err := s.repo.User().HasRole(ctx, nil, actorID, models.RoleProfessor)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !isProfessor || course.InstructorID != actorID {
		return nil, NewPermissionError(actorID, id, "course", "update", "not the course instructor")
	}

	// Partial update: only supplied fields change. UpdatedAt always
	// advances on a successful update.
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	course.UpdatedAt = time.Now()

	if err := s.repo.Course().Update(ctx, nil, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id)

	s.publishCourseEvent(ctx, events.EventCourseUpdated, course)

	return s.getResponseByID(ctx, id)
}

// ===== QUERY OPERATIONS =====

// GetByID returns the course with its instructor, enrollments and enrolled
// users, or (nil, nil) when no such course exists
func (s *courseService) GetByID(ctx context.Context, id string) (*CourseResponse, error) {
	course, err := s.repo.Course().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return &CourseResponse{Course: course}, nil
}

func (s *courseService) List(ctx context.Context, req *ListCoursesRequest) (*CourseListResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	filters := repositories.CourseFilters{
		InstructorID: req.InstructorID,
		Limit:        limit,
		Offset:       req.Offset,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}
	if req.Level != nil {
		level := string(*req.Level)
		filters.Level = &level
	}

	courses, total, err := s.repo.Course().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	responses := make([]*CourseResponse, 0, len(courses))
	for _, course := range courses {
		count, err := s.repo.Enrollment().CountByCourse(ctx, nil, course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments: %w", err)
		}
		course.EnrollmentCount = int(count)
		responses = append(responses, &CourseResponse{Course: course})
	}

	return &CourseListResponse{
		Courses: responses,
		Total:   total,
		Limit:   limit,
		Offset:  req.Offset,
	}, nil
}

// GetUser returns the user with their enrollments and instructed courses,
// or (nil, nil) when no such user exists
func (s *courseService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetCourseStats returns enrollment statistics for a course, or (nil, nil)
// when no such course exists
func (s *courseService) GetCourseStats(ctx context.Context, id string) (*repositories.CourseStats, error) {
	exists, err := s.repo.Course().ExistsByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, nil
	}

	stats, err := s.repo.Course().GetCourseStats(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course stats: %w", err)
	}

	return stats, nil
}

// GetInstructorStats returns aggregate course and enrollment counts for an
// instructor, or (nil, nil) when the id does not belong to a professor
func (s *courseService) GetInstructorStats(ctx context.Context, instructorID string) (*repositories.InstructorStats, error) {
	isProfessor, err := s.repo.User().HasRole(ctx, nil, instructorID, models.RoleProfessor)
	if err != nil {
		return nil, fmt.Errorf("failed to check instructor: %w", err)
	}
	if !isProfessor {
		return nil, nil
	}

	stats, err := s.repo.Course().GetInstructorStats(ctx, nil, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get instructor stats: %w", err)
	}

	return stats, nil
}

// ===== HELPERS =====

func (s *courseService) getResponseByID(ctx context.Context, id string) (*CourseResponse, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrCourseNotFound
	}
	return resp, nil
}

// publishCourseEvent emits a lifecycle event. Delivery is best-effort; a
// broker failure must not fail the committed operation.
func (s *courseService) publishCourseEvent(ctx context.Context, eventType string, course *models.Course) {
	event := events.NewEvent(eventType, events.CourseEvent{
		CourseID:     course.ID,
		Title:        course.Title,
		Level:        string(course.Level),
		InstructorID: course.InstructorID,
	})

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish course event", "event_type", eventType, "course_id", course.ID, "error", err)
	}
}
