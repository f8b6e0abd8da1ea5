package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// Valid reports whether the level is one of the known difficulty levels.
func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID          string      `json:"id" gorm:"primaryKey;size:36"`
	Title       string      `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string      `json:"description" gorm:"type:text" validate:"max=2000"`
	Level       CourseLevel `json:"level" gorm:"not null;size:20;index" validate:"required,oneof=Beginner Intermediate Advanced"`

	// Metadata
	InstructorID string    `json:"instructor_id" gorm:"not null;index;size:36"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Instructor  User         `json:"instructor" gorm:"foreignKey:InstructorID"`
	Enrollments []Enrollment `json:"enrollments" gorm:"foreignKey:CourseID"`

	// Computed fields (not stored)
	EnrollmentCount int `json:"enrollment_count" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
