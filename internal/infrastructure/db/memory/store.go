// Package memory implements the record store in process memory. It backs the
// test suites and the STORE_DRIVER=memory mode. Each collection holds its
// rows behind its own mutex, and every create performs the whole
// read-allocate-write sequence under that lock, so concurrent writers of one
// collection are fully serialized.
package memory

import (
	"context"
	"sync"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// Store bundles the three collections.
type Store struct {
	users       userCollection
	courses     courseCollection
	enrollments enrollmentCollection
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() ports.UserRepository             { return &s.users }
func (s *Store) Courses() ports.CourseRepository         { return &s.courses }
func (s *Store) Enrollments() ports.EnrollmentRepository { return &s.enrollments }

// --- users ---

type userCollection struct {
	mu   sync.Mutex
	rows []domain.User
}

func (c *userCollection) List(_ context.Context) ([]domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.User, len(c.rows))
	copy(out, c.rows)
	return out, nil
}

func (c *userCollection) FindByID(_ context.Context, id int) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].ID == id {
			u := c.rows[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (c *userCollection) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].Email == email {
			u := c.rows[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (c *userCollection) Create(_ context.Context, user domain.User) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	user.ID = nextUserID(c.rows)
	c.rows = append(c.rows, user)
	return &user, nil
}

// nextUserID is the sequential allocator: max existing id + 1, or 1 for an
// empty collection. Callers must hold the collection lock.
func nextUserID(rows []domain.User) int {
	next := 1
	for i := range rows {
		if rows[i].ID >= next {
			next = rows[i].ID + 1
		}
	}
	return next
}

// --- courses ---

type courseCollection struct {
	mu   sync.Mutex
	rows []domain.Course
}

func (c *courseCollection) List(_ context.Context) ([]domain.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Course, len(c.rows))
	copy(out, c.rows)
	return out, nil
}

func (c *courseCollection) FindByID(_ context.Context, id int) (*domain.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].ID == id {
			course := c.rows[i]
			return &course, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (c *courseCollection) Create(_ context.Context, course domain.Course) (*domain.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := 1
	for i := range c.rows {
		if c.rows[i].ID >= next {
			next = c.rows[i].ID + 1
		}
	}
	course.ID = next
	c.rows = append(c.rows, course)
	return &course, nil
}

// --- enrollments ---

type enrollmentCollection struct {
	mu   sync.Mutex
	rows []domain.Enrollment
}

func (c *enrollmentCollection) List(_ context.Context) ([]domain.Enrollment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Enrollment, len(c.rows))
	copy(out, c.rows)
	return out, nil
}

func (c *enrollmentCollection) FindByStudentAndCourse(_ context.Context, studentID, courseID int) (*domain.Enrollment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].StudentID == studentID && c.rows[i].CourseID == courseID {
			e := c.rows[i]
			return &e, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (c *enrollmentCollection) Create(_ context.Context, enrollment domain.Enrollment) (*domain.Enrollment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := 1
	for i := range c.rows {
		if c.rows[i].StudentID == enrollment.StudentID && c.rows[i].CourseID == enrollment.CourseID {
			return nil, domain.ErrAlreadyEnrolled
		}
		if c.rows[i].ID >= next {
			next = c.rows[i].ID + 1
		}
	}
	enrollment.ID = next
	c.rows = append(c.rows, enrollment)
	return &enrollment, nil
}

func (c *enrollmentCollection) Sign(_ context.Context, studentID, courseID int, signedAt string) (*domain.Enrollment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].StudentID != studentID || c.rows[i].CourseID != courseID {
			continue
		}
		if c.rows[i].SignedAt != nil {
			return nil, domain.ErrAlreadySigned
		}
		ts := signedAt
		c.rows[i].SignedAt = &ts
		e := c.rows[i]
		return &e, nil
	}
	return nil, domain.ErrEnrollmentNotFound
}
