package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// CourseRepository persists courses. Read methods that take a *gorm.DB use
// it as the handle for the current transaction; passing nil falls back to
// the repository's own connection.
type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error)
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, int64, error)

	// Validation and checks
	ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error)

	// Statistics
	GetCourseStats(ctx context.Context, tx *gorm.DB, id string) (*CourseStats, error)
	GetInstructorStats(ctx context.Context, tx *gorm.DB, instructorID string) (*InstructorStats, error)
}
