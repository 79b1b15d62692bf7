// Package mongo implements the record store over MongoDB. The three entity
// collections keep integer ids in _id; a fourth counters collection backs
// the sequential allocator (see sequence.go). Uniqueness invariants (user
// email, enrollment student/course pair) are enforced by unique indexes, so
// the duplicate-key error inside the atomic insert is the authoritative
// conflict signal under concurrency.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

const (
	usersCollection       = "users"
	coursesCollection     = "courses"
	enrollmentsCollection = "enrollments"
)

// Store bundles the three collection repositories over one database.
type Store struct {
	users       UserRepository
	courses     CourseRepository
	enrollments EnrollmentRepository
}

func NewStore(db *mongo.Database) *Store {
	seq := &sequence{db: db}
	return &Store{
		users:       UserRepository{coll: db.Collection(usersCollection), seq: seq},
		courses:     CourseRepository{coll: db.Collection(coursesCollection), seq: seq},
		enrollments: EnrollmentRepository{coll: db.Collection(enrollmentsCollection), seq: seq},
	}
}

func (s *Store) Users() ports.UserRepository             { return &s.users }
func (s *Store) Courses() ports.CourseRepository         { return &s.courses }
func (s *Store) Enrollments() ports.EnrollmentRepository { return &s.enrollments }

// Init creates the unique indexes and seeds the id counters from each
// collection's current max id. Call once at startup, before serving.
func (s *Store) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = s.enrollments.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "course_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create enrollments index: %w", err)
	}

	for _, coll := range []string{usersCollection, coursesCollection, enrollmentsCollection} {
		if err := s.users.seq.ensure(ctx, coll); err != nil {
			return fmt.Errorf("seed counter for %s: %w", coll, err)
		}
	}
	return nil
}
