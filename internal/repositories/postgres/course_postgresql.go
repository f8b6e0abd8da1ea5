package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (c *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

// Create inserts a new course and invalidates instructor/list caches
func (c *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := c.getDB(tx).WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", repositories.TranslateError(err))
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Course, fmt.Sprintf("instructor:%s:*", course.InstructorID))
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Course, "list:*")

	return nil
}

// GetByID retrieves a course with its instructor, served through the cache
func (c *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		err := c.getDB(tx).WithContext(ctx).
			Preload("Instructor").
			First(&dbCourse, "id = ?", id).Error
		if err != nil {
			return nil, repositories.TranslateError(err)
		}
		return &dbCourse, nil
	})

	if err != nil {
		return nil, err
	}

	return &course, nil
}

// GetByIDWithDetails retrieves a course with instructor, enrollments and the
// enrolled users. Never cached: enrollment state must be read fresh.
func (c *CoursePostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	err := c.getDB(tx).WithContext(ctx).
		Preload("Instructor").
		Preload("Enrollments", func(db *gorm.DB) *gorm.DB {
			return db.Order("enrollments.created_at ASC")
		}).
		Preload("Enrollments.User").
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}

	course.EnrollmentCount = len(course.Enrollments)
	return &course, nil
}

// Update applies the course's mutable columns and invalidates its caches.
// updated_at is written explicitly so the caller controls the timestamp.
func (c *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	err := c.getDB(tx).WithContext(ctx).Model(&models.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"title":       course.Title,
		"description": course.Description,
		"level":       course.Level,
		"updated_at":  course.UpdatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update course: %w", repositories.TranslateError(err))
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID, course.InstructorID)

	return nil
}

// List retrieves courses with filters and pagination
func (c *CoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.getDB(tx).WithContext(ctx).Model(&models.Course{})

	query = c.helpers.ApplyCourseFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	// Listing rows carry an enrollment count, not the enrollment rows; the
	// caller fills EnrollmentCount from the enrollment repository
	var courses []*models.Course
	err := query.
		Preload("Instructor").
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// ExistsByID checks course existence without loading the row
func (c *CoursePostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := c.getDB(tx).WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return count > 0, nil
}

// GetCourseStats returns enrollment statistics for a course
func (c *CoursePostgreSQL) GetCourseStats(ctx context.Context, tx *gorm.DB, id string) (*repositories.CourseStats, error) {
	var stats repositories.CourseStats

	var count int64
	err := c.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", id).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	stats.EnrollmentCount = int(count)

	var last models.Enrollment
	err = c.getDB(tx).WithContext(ctx).
		Where("course_id = ?", id).
		Order("created_at DESC").
		First(&last).Error
	if err == nil {
		stats.LastEnrolledAt = &last.CreatedAt
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get latest enrollment: %w", err)
	}

	return &stats, nil
}

// GetInstructorStats returns aggregate statistics for an instructor
func (c *CoursePostgreSQL) GetInstructorStats(ctx context.Context, tx *gorm.DB, instructorID string) (*repositories.InstructorStats, error) {
	var stats repositories.InstructorStats

	var courseCount int64
	err := c.getDB(tx).WithContext(ctx).
		Model(&models.Course{}).
		Where("instructor_id = ?", instructorID).
		Count(&courseCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	stats.TotalCourses = int(courseCount)

	var enrollmentCount int64
	err = c.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Count(&enrollmentCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	stats.TotalEnrollments = int(enrollmentCount)

	return &stats, nil
}
