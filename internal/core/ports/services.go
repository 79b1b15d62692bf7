package ports

import (
	"context"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
)

// ProvisionUserInput carries the payload for creating a user.
type ProvisionUserInput struct {
	Email    string
	Password string
	Role     string
}

// UserService defines the admin-facing user operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Provision(ctx context.Context, input ProvisionUserInput) (*domain.User, error)
}

// ProvisionCourseInput carries the payload for creating a course.
// Date must match domain.TimeLayout.
type ProvisionCourseInput struct {
	Title string
	Date  string
}

// CourseService defines the admin-facing course operations.
type CourseService interface {
	List(ctx context.Context) ([]domain.Course, error)
	Provision(ctx context.Context, input ProvisionCourseInput) (*domain.Course, error)
}

// RegisterEnrollmentInput carries the payload for enrolling a student.
type RegisterEnrollmentInput struct {
	StudentID int
	CourseID  int
}

// EnrollmentService defines enrollment registration and attendance signing.
type EnrollmentService interface {
	List(ctx context.Context) ([]domain.Enrollment, error)
	// Register enrolls a student in a course. Preconditions are checked in
	// order, each short-circuiting: student resolves to a user with the
	// student role, course exists, pair not already enrolled.
	Register(ctx context.Context, input RegisterEnrollmentInput) (*domain.Enrollment, error)
	// Sign records the calling student's one-time attendance confirmation
	// for the given course.
	Sign(ctx context.Context, studentID, courseID int) (*domain.Enrollment, error)
}
