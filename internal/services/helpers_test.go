package services

import (
	"log/slog"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// serviceTestEnv bundles the shared fixtures for service tests: an
// in-memory sqlite database behind the real repository layer, a mock event
// publisher and a quiet logger.
type serviceTestEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	// One shared in-memory database per test, named after the test so
	// parallel packages never collide
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	return &serviceTestEnv{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		publisher: events.NewMockEventPublisher(logger),
		logger:    logger,
		validator: validator.New(),
	}
}

func (env *serviceTestEnv) courseService() CourseService {
	return NewCourseService(env.repo, env.db, env.logger, env.validator, env.publisher)
}

func (env *serviceTestEnv) enrollmentService() EnrollmentService {
	return NewEnrollmentService(env.repo, env.db, env.logger, env.validator, env.publisher)
}

func (env *serviceTestEnv) createUser(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Role: role}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", email, err)
	}
	return user
}

func (env *serviceTestEnv) createCourse(t *testing.T, title string, level models.CourseLevel, instructorID string) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        title,
		Description:  "test course",
		Level:        level,
		InstructorID: instructorID,
	}
	if err := env.db.Create(course).Error; err != nil {
		t.Fatalf("Failed to create test course %s: %v", title, err)
	}
	return course
}

func strPtr(s string) *string {
	return &s
}
