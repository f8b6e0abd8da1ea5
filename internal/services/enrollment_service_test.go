package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	env := newServiceTestEnv(t)
	service := env.enrollmentService()
	ctx := context.Background()

	professor := env.createUser(t, "Dr. Sarah Johnson", "sarah.johnson@university.edu", models.RoleProfessor)
	student := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)
	course := env.createCourse(t, "Introduction to React", models.LevelBeginner, professor.ID)

	t.Run("FirstEnrollmentSucceeds", func(t *testing.T) {
		enrollment, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID}, student.ID)
		if err != nil {
			t.Fatalf("Failed to enroll: %v", err)
		}

		if enrollment.UserID != student.ID {
			t.Errorf("Expected user %s, got %s", student.ID, enrollment.UserID)
		}
		if enrollment.CourseID != course.ID {
			t.Errorf("Expected course %s, got %s", course.ID, enrollment.CourseID)
		}
		if enrollment.User.Email != student.Email {
			t.Errorf("Expected joined user %s, got %s", student.Email, enrollment.User.Email)
		}
		if enrollment.Course.Title != course.Title {
			t.Errorf("Expected joined course %q, got %q", course.Title, enrollment.Course.Title)
		}
		if enrollment.CreatedAt.IsZero() {
			t.Error("Enrollment timestamp should be set")
		}
	})

	t.Run("DuplicateEnrollmentIsConflict", func(t *testing.T) {
		_, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID}, student.ID)
		if err == nil {
			t.Fatal("Expected conflict on duplicate enrollment")
		}
		if !errors.Is(err, ErrAlreadyEnrolled) {
			t.Errorf("Expected ErrAlreadyEnrolled, got %v", err)
		}
		if !IsConflictError(err) {
			t.Errorf("Duplicate enrollment should be a conflict, got %v", err)
		}
		if IsNotFoundError(err) {
			t.Error("Conflict must not be reported as not-found")
		}
	})

	t.Run("MissingCourseIsNotFound", func(t *testing.T) {
		_, err := service.Enroll(ctx, &EnrollRequest{CourseID: "no-such-course"}, student.ID)
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("Expected ErrCourseNotFound, got %v", err)
		}
	})

	t.Run("MissingUserIsNotFound", func(t *testing.T) {
		_, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID, UserID: "no-such-user"}, professor.ID)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("StudentCannotEnrollOthers", func(t *testing.T) {
		other := env.createUser(t, "Bob Wilson", "bob.wilson@student.edu", models.RoleStudent)

		_, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID, UserID: other.ID}, student.ID)
		if !IsPermissionError(err) {
			t.Errorf("Expected permission error, got %v", err)
		}
	})

	t.Run("ProfessorCanEnrollOthers", func(t *testing.T) {
		other := env.createUser(t, "Carol Davis", "carol.davis@student.edu", models.RoleStudent)

		enrollment, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID, UserID: other.ID}, professor.ID)
		if err != nil {
			t.Fatalf("Professor should be able to enroll others: %v", err)
		}
		if enrollment.UserID != other.ID {
			t.Errorf("Expected enrollment for %s, got %s", other.ID, enrollment.UserID)
		}
	})

	t.Run("MissingCourseIDFailsValidation", func(t *testing.T) {
		_, err := service.Enroll(ctx, &EnrollRequest{}, student.ID)
		if err == nil {
			t.Fatal("Expected validation error")
		}
		if IsConflictError(err) || IsNotFoundError(err) {
			t.Errorf("Validation failure must stay distinct from conflict/not-found, got %v", err)
		}
	})
}

func TestEnrollmentService_IsEnrolled(t *testing.T) {
	env := newServiceTestEnv(t)
	service := env.enrollmentService()
	ctx := context.Background()

	professor := env.createUser(t, "Prof. Michael Chen", "michael.chen@university.edu", models.RoleProfessor)
	student := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)
	course := env.createCourse(t, "Database Design", models.LevelIntermediate, professor.ID)

	enrolled, err := service.IsEnrolled(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("IsEnrolled failed: %v", err)
	}
	if enrolled {
		t.Error("Expected not enrolled before Enroll")
	}

	if _, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID}, student.ID); err != nil {
		t.Fatalf("Failed to enroll: %v", err)
	}

	// Enrollment is immediately and durably visible
	for i := 0; i < 2; i++ {
		enrolled, err = service.IsEnrolled(ctx, student.ID, course.ID)
		if err != nil {
			t.Fatalf("IsEnrolled failed: %v", err)
		}
		if !enrolled {
			t.Fatal("Expected enrolled after Enroll")
		}
	}
}

func TestEnrollmentService_GetByPair(t *testing.T) {
	env := newServiceTestEnv(t)
	service := env.enrollmentService()
	ctx := context.Background()

	professor := env.createUser(t, "Prof. Michael Chen", "michael.chen@university.edu", models.RoleProfessor)
	student := env.createUser(t, "Bob Wilson", "bob.wilson@student.edu", models.RoleStudent)
	course := env.createCourse(t, "Node.js Backend Development", models.LevelIntermediate, professor.ID)

	t.Run("AbsenceIsNilNotError", func(t *testing.T) {
		enrollment, err := service.GetByPair(ctx, student.ID, course.ID)
		if err != nil {
			t.Fatalf("Absence must not be an error, got %v", err)
		}
		if enrollment != nil {
			t.Errorf("Expected nil enrollment, got %+v", enrollment)
		}
	})

	t.Run("ReturnsJoinedEnrollment", func(t *testing.T) {
		if _, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID}, student.ID); err != nil {
			t.Fatalf("Failed to enroll: %v", err)
		}

		enrollment, err := service.GetByPair(ctx, student.ID, course.ID)
		if err != nil {
			t.Fatalf("GetByPair failed: %v", err)
		}
		if enrollment == nil {
			t.Fatal("Expected enrollment after Enroll")
		}
		if enrollment.User.Name != student.Name {
			t.Errorf("Expected joined user %q, got %q", student.Name, enrollment.User.Name)
		}
		if enrollment.Course.Title != course.Title {
			t.Errorf("Expected joined course %q, got %q", course.Title, enrollment.Course.Title)
		}
	})
}

func TestEnrollmentService_PublishesEvent(t *testing.T) {
	env := newServiceTestEnv(t)
	service := env.enrollmentService()
	ctx := context.Background()

	professor := env.createUser(t, "Dr. Sarah Johnson", "sarah.johnson@university.edu", models.RoleProfessor)
	student := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)
	course := env.createCourse(t, "Advanced JavaScript", models.LevelAdvanced, professor.ID)

	if _, err := service.Enroll(ctx, &EnrollRequest{CourseID: course.ID}, student.ID); err != nil {
		t.Fatalf("Failed to enroll: %v", err)
	}

	published := env.publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(published))
	}

	event := published[0]
	if event.Type != events.EventEnrollmentCreated {
		t.Errorf("Expected event type %q, got %q", events.EventEnrollmentCreated, event.Type)
	}
	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Source != "course-service" {
		t.Errorf("Expected source 'course-service', got %q", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version '1.0', got %q", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp should not be zero")
	}

	payload, ok := event.Data.(events.EnrollmentEvent)
	if !ok {
		t.Fatalf("Expected EnrollmentEvent payload, got %T", event.Data)
	}
	if payload.UserID != student.ID || payload.CourseID != course.ID {
		t.Errorf("Unexpected payload %+v", payload)
	}
}

// End-to-end scenario: a professor creates a course, a student enrolls
// once, a repeat enrollment conflicts, and the course listing reflects
// exactly one enrollee.
func TestEnrollmentScenario(t *testing.T) {
	env := newServiceTestEnv(t)
	courses := env.courseService()
	enrollments := env.enrollmentService()
	ctx := context.Background()

	professor := env.createUser(t, "Dr. Sarah Johnson", "sarah.johnson@university.edu", models.RoleProfessor)
	student := env.createUser(t, "Bob Wilson", "bob.wilson@student.edu", models.RoleStudent)

	created, err := courses.Create(ctx, &CreateCourseRequest{
		Title:       "Introduction to React",
		Description: strPtr("Learn the fundamentals of React."),
		Level:       models.LevelBeginner,
	}, professor.ID)
	if err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}

	enrollment, err := enrollments.Enroll(ctx, &EnrollRequest{CourseID: created.ID}, student.ID)
	if err != nil {
		t.Fatalf("Failed to enroll: %v", err)
	}
	if enrollment.User.Name != student.Name || enrollment.Course.Title != "Introduction to React" {
		t.Errorf("Enrollment not joined as expected: %+v", enrollment)
	}

	if _, err := enrollments.Enroll(ctx, &EnrollRequest{CourseID: created.ID}, student.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("Expected ErrAlreadyEnrolled on repeat, got %v", err)
	}

	list, err := courses.List(ctx, &ListCoursesRequest{})
	if err != nil {
		t.Fatalf("Failed to list courses: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("Expected 1 course, got %d", list.Total)
	}
	if list.Courses[0].EnrollmentCount != 1 {
		t.Errorf("Expected exactly 1 enrollment, got %d", list.Courses[0].EnrollmentCount)
	}
}
