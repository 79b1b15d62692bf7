package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// SeedConfig holds the default identities created at first boot.
type SeedConfig struct {
	AdminEmail      string
	AdminPassword   string
	StudentEmail    string
	StudentPassword string
}

// Seeder populates an empty store at boot: one admin and one student when
// the users collection is empty, plus a sample course and one enrollment for
// the seeded student when the courses collection is empty. A store that
// already has data is left untouched.
type Seeder struct {
	users       ports.UserRepository
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	cfg         SeedConfig
	log         zerolog.Logger
}

func NewSeeder(
	users ports.UserRepository,
	courses ports.CourseRepository,
	enrollments ports.EnrollmentRepository,
	cfg SeedConfig,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{users: users, courses: courses, enrollments: enrollments, cfg: cfg, log: log}
}

func (s *Seeder) Run(ctx context.Context) error {
	student, err := s.seedUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if err := s.seedCourses(ctx, student); err != nil {
		return fmt.Errorf("seed courses: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) (*domain.User, error) {
	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	if _, err := s.users.Create(ctx, domain.User{
		Email:    s.cfg.AdminEmail,
		Password: s.cfg.AdminPassword,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return nil, err
	}

	student, err := s.users.Create(ctx, domain.User{
		Email:    s.cfg.StudentEmail,
		Password: s.cfg.StudentPassword,
		Role:     domain.RoleStudent,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin", s.cfg.AdminEmail).Str("student", s.cfg.StudentEmail).Msg("seeded default users")
	return student, nil
}

// seedCourses creates the sample course and, when a student was just seeded,
// one enrollment for it. student is nil when the users collection already
// had data; in that case only the course is seeded.
func (s *Seeder) seedCourses(ctx context.Context, student *domain.User) error {
	existing, err := s.courses.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	course, err := s.courses.Create(ctx, domain.Course{
		Title: "Introduction to Go",
		Date:  "11/11/2021 11:11:11",
	})
	if err != nil {
		return err
	}

	if student == nil {
		return nil
	}

	if _, err := s.enrollments.Create(ctx, domain.Enrollment{
		StudentID:    student.ID,
		CourseID:     course.ID,
		RegisteredAt: domain.Timestamp(time.Now()),
	}); err != nil {
		return err
	}

	s.log.Info().Int("course_id", course.ID).Int("student_id", student.ID).Msg("seeded sample course and enrollment")
	return nil
}
