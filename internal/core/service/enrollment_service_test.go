package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
	"github.com/guilliammrst/enrollment-api/internal/infrastructure/db/memory"
)

// enrollmentFixture seeds one admin, one student and one course.
type enrollmentFixture struct {
	svc     *EnrollmentService
	store   *memory.Store
	admin   *domain.User
	student *domain.User
	course  *domain.Course
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	admin, err := store.Users().Create(ctx, domain.User{Email: "admin@test.com", Password: "test", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	student, err := store.Users().Create(ctx, domain.User{Email: "student@test.com", Password: "test", Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}
	course, err := store.Courses().Create(ctx, domain.Course{Title: "Intro", Date: "11/11/2021 11:11:11"})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}

	return &enrollmentFixture{
		svc:     NewEnrollmentService(store.Users(), store.Courses(), store.Enrollments(), zerolog.Nop()),
		store:   store,
		admin:   admin,
		student: student,
		course:  course,
	}
}

func TestEnrollmentService_Register_Success(t *testing.T) {
	f := newEnrollmentFixture(t)

	e, err := f.svc.Register(context.Background(), ports.RegisterEnrollmentInput{
		StudentID: f.student.ID,
		CourseID:  f.course.ID,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if e.ID != 1 || e.StudentID != f.student.ID || e.CourseID != f.course.ID {
		t.Fatalf("unexpected enrollment: %+v", e)
	}
	if e.SignedAt != nil {
		t.Fatalf("new enrollment must be unsigned")
	}
	if _, err := domain.ParseTimestamp(e.RegisteredAt); err != nil {
		t.Fatalf("RegisteredAt not canonical: %q", e.RegisteredAt)
	}
}

func TestEnrollmentService_Register_StudentNotFound(t *testing.T) {
	f := newEnrollmentFixture(t)

	if _, err := f.svc.Register(context.Background(), ports.RegisterEnrollmentInput{
		StudentID: 99, CourseID: f.course.ID,
	}); !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestEnrollmentService_Register_AdminIsNotAStudent(t *testing.T) {
	f := newEnrollmentFixture(t)

	// the referenced user exists but holds the admin role
	if _, err := f.svc.Register(context.Background(), ports.RegisterEnrollmentInput{
		StudentID: f.admin.ID, CourseID: f.course.ID,
	}); !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestEnrollmentService_Register_CourseNotFound(t *testing.T) {
	f := newEnrollmentFixture(t)

	if _, err := f.svc.Register(context.Background(), ports.RegisterEnrollmentInput{
		StudentID: f.student.ID, CourseID: 99,
	}); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_Register_Duplicate(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()
	input := ports.RegisterEnrollmentInput{StudentID: f.student.ID, CourseID: f.course.ID}

	if _, err := f.svc.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := f.svc.Register(ctx, input); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	rows, _ := f.svc.List(ctx)
	if len(rows) != 1 {
		t.Fatalf("duplicate register must not append, got %d rows", len(rows))
	}
}

func TestEnrollmentService_Sign_OnceThenConflict(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, ports.RegisterEnrollmentInput{StudentID: f.student.ID, CourseID: f.course.ID}); err != nil {
		t.Fatalf("register: %v", err)
	}

	signed, err := f.svc.Sign(ctx, f.student.ID, f.course.ID)
	if err != nil {
		t.Fatalf("first sign: %v", err)
	}
	if signed.SignedAt == nil {
		t.Fatalf("sign did not set SignedAt")
	}
	if _, err := domain.ParseTimestamp(*signed.SignedAt); err != nil {
		t.Fatalf("SignedAt not canonical: %q", *signed.SignedAt)
	}

	first := *signed.SignedAt
	if _, err := f.svc.Sign(ctx, f.student.ID, f.course.ID); !errors.Is(err, domain.ErrAlreadySigned) {
		t.Fatalf("second sign: expected ErrAlreadySigned, got %v", err)
	}

	row, err := f.store.Enrollments().FindByStudentAndCourse(ctx, f.student.ID, f.course.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if *row.SignedAt != first {
		t.Fatalf("second sign mutated SignedAt")
	}
}

func TestEnrollmentService_Sign_NotEnrolled(t *testing.T) {
	f := newEnrollmentFixture(t)

	if _, err := f.svc.Sign(context.Background(), f.student.ID, f.course.ID); !errors.Is(err, domain.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}
}
