package validator

import (
	"strings"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func levelPtr(l models.CourseLevel) *models.CourseLevel {
	return &l
}

func TestValidateCourseCreate(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		req     *CourseCreateRequest
		wantErr bool
		field   string
	}{
		{
			name: "valid request",
			req: &CourseCreateRequest{
				Title: "Introduction to React",
				Level: models.LevelBeginner,
			},
			wantErr: false,
		},
		{
			name: "valid with description",
			req: &CourseCreateRequest{
				Title:       "Database Design",
				Description: strPtr("Learn SQL and normalization."),
				Level:       models.LevelIntermediate,
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			req:     &CourseCreateRequest{Level: models.LevelBeginner},
			wantErr: true,
			field:   "title",
		},
		{
			name:    "whitespace-only title",
			req:     &CourseCreateRequest{Title: "   ", Level: models.LevelBeginner},
			wantErr: true,
			field:   "title",
		},
		{
			name:    "title too long",
			req:     &CourseCreateRequest{Title: strings.Repeat("x", 201), Level: models.LevelBeginner},
			wantErr: true,
			field:   "title",
		},
		{
			name: "description too long",
			req: &CourseCreateRequest{
				Title:       "Advanced JavaScript",
				Description: strPtr(strings.Repeat("x", 2001)),
				Level:       models.LevelAdvanced,
			},
			wantErr: true,
			field:   "description",
		},
		{
			name:    "missing level",
			req:     &CourseCreateRequest{Title: "Node.js Backend Development"},
			wantErr: true,
			field:   "level",
		},
		{
			name:    "unknown level",
			req:     &CourseCreateRequest{Title: "Node.js Backend Development", Level: models.CourseLevel("Expert")},
			wantErr: true,
			field:   "level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateCourseCreate(tt.req)
			if tt.wantErr != errs.HasErrors() {
				t.Fatalf("Expected wantErr=%v, got errors: %v", tt.wantErr, errs)
			}
			if tt.wantErr && !hasFieldError(errs, tt.field) {
				t.Errorf("Expected an error on field %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidateCourseUpdate(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		req     *CourseUpdateRequest
		wantErr bool
	}{
		{
			name:    "title only",
			req:     &CourseUpdateRequest{Title: strPtr("Advanced JavaScript Patterns")},
			wantErr: false,
		},
		{
			name:    "level only",
			req:     &CourseUpdateRequest{Level: levelPtr(models.LevelAdvanced)},
			wantErr: false,
		},
		{
			name:    "no fields",
			req:     &CourseUpdateRequest{},
			wantErr: true,
		},
		{
			name:    "whitespace-only title",
			req:     &CourseUpdateRequest{Title: strPtr("   ")},
			wantErr: true,
		},
		{
			name:    "unknown level",
			req:     &CourseUpdateRequest{Level: levelPtr(models.CourseLevel("Expert"))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateCourseUpdate(tt.req)
			if tt.wantErr != errs.HasErrors() {
				t.Errorf("Expected wantErr=%v, got errors: %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateEnroll(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateEnroll(&EnrollRequest{CourseID: "c1"}); errs.HasErrors() {
		t.Errorf("Expected valid request, got %v", errs)
	}
	if errs := bv.ValidateEnroll(&EnrollRequest{}); !hasFieldError(errs, "course_id") {
		t.Errorf("Expected course_id error, got %v", errs)
	}
}

func TestValidateLogin(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateLogin(&LoginRequest{Email: "alice.smith@student.edu", Password: "password"}); errs.HasErrors() {
		t.Errorf("Expected valid request, got %v", errs)
	}
	if errs := bv.ValidateLogin(&LoginRequest{Email: "not-an-email", Password: "password"}); !hasFieldError(errs, "email") {
		t.Errorf("Expected email error, got %v", errs)
	}
	if errs := bv.ValidateLogin(&LoginRequest{Email: "alice.smith@student.edu"}); !hasFieldError(errs, "password") {
		t.Errorf("Expected password error, got %v", errs)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "is required"},
		{Field: "level", Message: "must be one of: Beginner, Intermediate, Advanced"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "title: is required") {
		t.Errorf("Error message missing title failure: %q", msg)
	}
	if !strings.Contains(msg, "level:") {
		t.Errorf("Error message missing level failure: %q", msg)
	}
}

func hasFieldError(errs ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
