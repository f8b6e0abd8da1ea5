package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateCourseCreate validates course creation business rules
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if strings.TrimSpace(req.Title) == "" && req.Title != "" {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: "must contain non-whitespace characters",
			Value:   req.Title,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateCourseUpdate validates course update business rules. All fields are
// optional, but at least one must be present.
func (bv *BusinessValidator) ValidateCourseUpdate(req *CourseUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Title == nil && req.Description == nil && req.Level == nil {
		errors = append(errors, ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
			Rule:    "business_logic",
		})
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: "must contain non-whitespace characters",
			Value:   *req.Title,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateEnroll validates enrollment request rules
func (bv *BusinessValidator) ValidateEnroll(req *EnrollRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateLogin validates login request rules
func (bv *BusinessValidator) ValidateLogin(req *LoginRequest) ValidationErrors {
	return bv.Validate(req)
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Title validation (1-200 characters)
	bv.validate.RegisterValidation("course_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Description validation (max 2000 characters)
	bv.validate.RegisterValidation("course_description", func(fl validator.FieldLevel) bool {
		desc := fl.Field().String()
		return len(desc) <= 2000
	})

	// course level validation
	bv.validate.RegisterValidation("course_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().String()
		return models.CourseLevel(level).Valid()
	})

	// user role validation
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return models.UserRole(role).Valid()
	})
}
