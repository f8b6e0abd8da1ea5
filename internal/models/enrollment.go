package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links one user to one course. The (user_id, course_id) pair is
// unique at the storage layer; enrollments are append-only facts and are
// never updated or deleted.
type Enrollment struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	UserID   string `json:"user_id" gorm:"not null;size:36;uniqueIndex:idx_enrollments_user_course"`
	CourseID string `json:"course_id" gorm:"not null;size:36;uniqueIndex:idx_enrollments_user_course"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User   User   `json:"user" gorm:"foreignKey:UserID"`
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
