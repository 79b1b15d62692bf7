package handler

import "github.com/guilliammrst/enrollment-api/internal/core/domain"

// errorResponse documents the standard error envelope for swag; the actual
// rendering happens in the central HTTP error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin student"`
}

type createCourseRequest struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date"  validate:"required,coursedate"`
}

type createEnrollmentRequest struct {
	StudentID int `json:"student_id" validate:"required,gt=0"`
	CourseID  int `json:"course_id"  validate:"required,gt=0"`
}

// signCourseRequest carries only the course: the student is the
// authenticated caller.
type signCourseRequest struct {
	CourseID int `json:"course_id" validate:"required,gt=0"`
}

type signCourseResponse struct {
	Message    string             `json:"message"`
	Enrollment *domain.Enrollment `json:"enrollment"`
}
