package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/course-service/internal/models"
)

func TestExportService_ExportRoster(t *testing.T) {
	env := newServiceTestEnv(t)
	service := NewExportService(env.repo, env.logger)
	ctx := context.Background()

	professor := env.createUser(t, "Dr. Sarah Johnson", "sarah.johnson@university.edu", models.RoleProfessor)
	otherProfessor := env.createUser(t, "Prof. Michael Chen", "michael.chen@university.edu", models.RoleProfessor)
	student := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)
	course := env.createCourse(t, "Introduction to React", models.LevelBeginner, professor.ID)

	if _, err := env.enrollmentService().Enroll(ctx, &EnrollRequest{CourseID: course.ID}, student.ID); err != nil {
		t.Fatalf("Failed to enroll: %v", err)
	}

	t.Run("InstructorGetsWorkbook", func(t *testing.T) {
		data, err := service.ExportRoster(ctx, course.ID, professor.ID)
		if err != nil {
			t.Fatalf("ExportRoster failed: %v", err)
		}

		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Exported data is not a valid workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows("Roster")
		if err != nil {
			t.Fatalf("Failed to read Roster sheet: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected header plus 1 enrollee, got %d rows", len(rows))
		}
		if rows[1][0] != student.Name || rows[1][1] != student.Email {
			t.Errorf("Unexpected roster row: %v", rows[1])
		}
	})

	t.Run("NonInstructorIsDenied", func(t *testing.T) {
		if _, err := service.ExportRoster(ctx, course.ID, otherProfessor.ID); !IsPermissionError(err) {
			t.Errorf("Expected permission error, got %v", err)
		}
		if _, err := service.ExportRoster(ctx, course.ID, student.ID); !IsPermissionError(err) {
			t.Errorf("Expected permission error, got %v", err)
		}
	})

	t.Run("MissingCourseIsNotFound", func(t *testing.T) {
		if _, err := service.ExportRoster(ctx, "no-such-course", professor.ID); !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("Expected ErrCourseNotFound, got %v", err)
		}
	})
}
