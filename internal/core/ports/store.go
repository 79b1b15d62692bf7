package ports

import (
	"context"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
)

// Repositories over the three named collections (users, courses,
// enrollments). Every implementation must serialize the read-allocate-write
// sequence per collection: Create allocates the next sequential id and
// appends atomically with respect to other writers of the same collection,
// so two concurrent creates can never observe the same max id.

// UserRepository persists users.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user has this email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create allocates the next id, enforces email uniqueness
	// (domain.ErrEmailTaken) and appends, all atomically.
	Create(ctx context.Context, user domain.User) (*domain.User, error)
}

// CourseRepository persists courses.
type CourseRepository interface {
	List(ctx context.Context) ([]domain.Course, error)
	// FindByID returns domain.ErrCourseNotFound when the id is unknown.
	FindByID(ctx context.Context, id int) (*domain.Course, error)
	Create(ctx context.Context, course domain.Course) (*domain.Course, error)
}

// EnrollmentRepository persists enrollments and owns the signed-once commit.
type EnrollmentRepository interface {
	List(ctx context.Context) ([]domain.Enrollment, error)
	// FindByStudentAndCourse returns domain.ErrEnrollmentNotFound when the
	// (student, course) pair has no enrollment.
	FindByStudentAndCourse(ctx context.Context, studentID, courseID int) (*domain.Enrollment, error)
	// Create allocates the next id and appends, enforcing (student_id,
	// course_id) uniqueness (domain.ErrAlreadyEnrolled).
	Create(ctx context.Context, enrollment domain.Enrollment) (*domain.Enrollment, error)
	// Sign sets signed_at on the (student, course) enrollment if and only if
	// it is currently unsigned, as a single conditional update. It returns
	// the updated record, domain.ErrEnrollmentNotFound, or
	// domain.ErrAlreadySigned.
	Sign(ctx context.Context, studentID, courseID int, signedAt string) (*domain.Enrollment, error)
}
