package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportRoster builds an xlsx workbook with the course's enrollees, ordered
// by enrollment time. Only the course's instructor may export it.
func (s *exportService) ExportRoster(ctx context.Context, courseID, actorID string) ([]byte, error) {
	s.logger.Info("Exporting roster", "course_id", courseID, "actor_id", actorID)

	course, err := s.repo.Course().GetByID(ctx, nil, courseID)
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
		return nil, NewPermissionError(actorID, courseID, "course", "export_roster", "not the course instructor")
	}

	enrollments, _, err := s.repo.Enrollment().ListByCourse(ctx, nil, courseID, repositories.EnrollmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Email", "Enrolled At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, enrollment := range enrollments {
		values := []interface{}{
			enrollment.User.Name,
			enrollment.User.Email,
			enrollment.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Roster exported", "course_id", courseID, "rows", len(enrollments))

	return buf.Bytes(), nil
}
