package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/api/metrics"
	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// EnrollmentService implements enrollment registration and attendance
// signing. Registration preconditions are checked in order and each
// short-circuits with its own error; the store re-enforces pair uniqueness
// and the signed-once transition inside its atomic commits.
type EnrollmentService struct {
	users       ports.UserRepository
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	log         zerolog.Logger
}

func NewEnrollmentService(
	users ports.UserRepository,
	courses ports.CourseRepository,
	enrollments ports.EnrollmentRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{users: users, courses: courses, enrollments: enrollments, log: log}
}

func (s *EnrollmentService) List(ctx context.Context) ([]domain.Enrollment, error) {
	return s.enrollments.List(ctx)
}

func (s *EnrollmentService) Register(ctx context.Context, input ports.RegisterEnrollmentInput) (*domain.Enrollment, error) {
	student, err := s.users.FindByID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("register enrollment: %w", err)
	}
	if !student.IsStudent() {
		return nil, domain.ErrStudentNotFound
	}

	if _, err := s.courses.FindByID(ctx, input.CourseID); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("register enrollment: %w", err)
	}

	if _, err := s.enrollments.FindByStudentAndCourse(ctx, input.StudentID, input.CourseID); err == nil {
		return nil, domain.ErrAlreadyEnrolled
	} else if !errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, fmt.Errorf("register enrollment: %w", err)
	}

	created, err := s.enrollments.Create(ctx, domain.Enrollment{
		StudentID:    input.StudentID,
		CourseID:     input.CourseID,
		RegisteredAt: domain.Timestamp(time.Now()),
		SignedAt:     nil,
	})
	if err != nil {
		return nil, fmt.Errorf("register enrollment: %w", err)
	}

	metrics.EnrollmentsCreatedTotal.Inc()
	s.log.Info().
		Int("enrollment_id", created.ID).
		Int("student_id", created.StudentID).
		Int("course_id", created.CourseID).
		Msg("enrollment registered")
	return created, nil
}

// Sign records the student's one-time attendance confirmation. The student
// is the authenticated caller, never taken from the payload.
func (s *EnrollmentService) Sign(ctx context.Context, studentID, courseID int) (*domain.Enrollment, error) {
	signed, err := s.enrollments.Sign(ctx, studentID, courseID, domain.Timestamp(time.Now()))
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) || errors.Is(err, domain.ErrAlreadySigned) {
			return nil, err
		}
		return nil, fmt.Errorf("sign enrollment: %w", err)
	}

	metrics.EnrollmentsSignedTotal.Inc()
	s.log.Info().
		Int("enrollment_id", signed.ID).
		Int("student_id", studentID).
		Int("course_id", courseID).
		Msg("enrollment signed")
	return signed, nil
}
