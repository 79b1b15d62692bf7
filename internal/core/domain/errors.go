package domain

import "errors"

// Sentinel errors returned by services and repositories. The API layer maps
// them to HTTP status codes in one place (internal/api/error_handler.go).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrLockedOut          = errors.New("too many failed login attempts")

	ErrEmailTaken   = errors.New("email already in use")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("role must be admin or student")
	ErrInvalidDate  = errors.New("date must match DD/MM/YYYY HH:MM:SS")

	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in this course")
	ErrAlreadySigned      = errors.New("course already signed")
)
