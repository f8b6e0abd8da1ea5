package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published by the course service
const (
	EventCourseCreated     = "course.created"
	EventCourseUpdated     = "course.updated"
	EventEnrollmentCreated = "enrollment.created"
	EventUserLoggedIn      = "user.logged_in"
)

// Event is the envelope for all messages published to the event bus
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent creates an event envelope with the service's standard metadata
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "course-service",
		Version:   "1.0",
		Timestamp: time.Now(),
		Data:      data,
	}
}

// CourseEvent is the payload for course lifecycle events
type CourseEvent struct {
	CourseID     string `json:"course_id"`
	Title        string `json:"title"`
	Level        string `json:"level"`
	InstructorID string `json:"instructor_id"`
}

// LoginEvent is the payload for user.logged_in
type LoginEvent struct {
	UserID  string    `json:"user_id"`
	Role    string    `json:"role"`
	LoginAt time.Time `json:"login_at"`
}

// EnrollmentEvent is the payload for enrollment lifecycle events
type EnrollmentEvent struct {
	EnrollmentID string    `json:"enrollment_id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}
