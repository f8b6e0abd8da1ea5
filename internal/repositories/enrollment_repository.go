package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// EnrollmentRepository persists the append-only user/course relation.
//
// Create relies on the composite unique index for the (user_id, course_id)
// pair: a duplicate insert surfaces ErrDuplicateKey. Implementations must
// not pre-check existence, since a separate check-then-insert races under
// concurrent requests for the same pair.
type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Enrollment, error)
	GetByPair(ctx context.Context, tx *gorm.DB, userID, courseID string) (*models.Enrollment, error)
	ExistsByPair(ctx context.Context, tx *gorm.DB, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID string, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)
	CountByCourse(ctx context.Context, tx *gorm.DB, courseID string) (int64, error)
}
