package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing domain entities. Absence on plain reads is a
// nil result, not an error; these are returned where absence makes the
// requested operation impossible (enroll against a missing course, update of
// a missing id).
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// PermissionError describes a denied action on a resource
type PermissionError struct {
	UserID     string
	ResourceID string
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s is not allowed to %s %s %s: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

// ConflictError describes a state conflict, distinct from not-found and from
// validation failures
type ConflictError struct {
	Resource string
	Reason   string
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

// ErrAlreadyEnrolled is the conflict surfaced when the enrollment unique
// index rejects a duplicate (user, course) pair
var ErrAlreadyEnrolled = NewConflictError("enrollment", "user is already enrolled in this course")

// IsNotFoundError reports whether err is one of the not-found sentinels
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound)
}

// IsConflictError reports whether err is a state conflict
func IsConflictError(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsPermissionError reports whether err is a denied permission
func IsPermissionError(err error) bool {
	var permErr *PermissionError
	return errors.As(err, &permErr)
}

// IsAuthError reports whether err is a failed authentication
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrSessionNotFound)
}
