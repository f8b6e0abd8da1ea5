package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (e *EnrollmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

// Create inserts the enrollment in a single constrained INSERT. The
// composite unique index on (user_id, course_id) is the only duplicate
// guard; a violation comes back as ErrDuplicateKey. There is deliberately
// no existence pre-check here.
func (e *EnrollmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	if err := e.getDB(tx).WithContext(ctx).Create(enrollment).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

// GetByID retrieves an enrollment with its user and course
func (e *EnrollmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := e.getDB(tx).WithContext(ctx).
		Preload("User").
		Preload("Course").
		First(&enrollment, "id = ?", id).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &enrollment, nil
}

// GetByPair retrieves the enrollment for a (user, course) pair, joined with
// both sides for the caller's convenience
func (e *EnrollmentPostgreSQL) GetByPair(ctx context.Context, tx *gorm.DB, userID, courseID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := e.getDB(tx).WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &enrollment, nil
}

// ExistsByPair checks whether a (user, course) enrollment exists. Always a
// fresh query against current state; enrollment checks are never cached.
func (e *EnrollmentPostgreSQL) ExistsByPair(ctx context.Context, tx *gorm.DB, userID, courseID string) (bool, error) {
	var count int64
	err := e.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}
	return count > 0, nil
}

// ListByUser retrieves a user's enrollments with their courses
func (e *EnrollmentPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	filters.UserID = &userID
	return e.list(ctx, tx, filters)
}

// ListByCourse retrieves a course's enrollments with the enrolled users
func (e *EnrollmentPostgreSQL) ListByCourse(ctx context.Context, tx *gorm.DB, courseID string, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	filters.CourseID = &courseID
	return e.list(ctx, tx, filters)
}

func (e *EnrollmentPostgreSQL) list(ctx context.Context, tx *gorm.DB, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	query := e.getDB(tx).WithContext(ctx).Model(&models.Enrollment{})

	query = e.helpers.ApplyEnrollmentFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var enrollments []*models.Enrollment
	err := query.
		Preload("User").
		Preload("Course").
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

// CountByCourse counts enrollments for a course
func (e *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, tx *gorm.DB, courseID string) (int64, error) {
	var count int64
	err := e.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
