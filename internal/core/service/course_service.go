package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/api/metrics"
	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// CourseService implements admin course provisioning.
type CourseService struct {
	courses ports.CourseRepository
	log     zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, log: log}
}

func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

// Provision creates a course with the next sequential id. The date is parsed
// and re-formatted so the stored value is always the canonical rendering of
// domain.TimeLayout, whatever the client sent.
func (s *CourseService) Provision(ctx context.Context, input ports.ProvisionCourseInput) (*domain.Course, error) {
	date, err := domain.ParseTimestamp(input.Date)
	if err != nil {
		return nil, err
	}

	created, err := s.courses.Create(ctx, domain.Course{
		Title: input.Title,
		Date:  domain.Timestamp(date),
	})
	if err != nil {
		return nil, fmt.Errorf("provision course: %w", err)
	}

	metrics.CoursesCreatedTotal.Inc()
	s.log.Info().Int("course_id", created.ID).Str("title", created.Title).Msg("course provisioned")
	return created, nil
}
