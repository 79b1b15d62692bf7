package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
)

// EnrollmentRepository persists enrollments in the enrollments collection.
type EnrollmentRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func (r *EnrollmentRepository) List(ctx context.Context) ([]domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	enrollments := []domain.Enrollment{}
	if err := cur.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID int) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Enrollment
	err := r.coll.FindOne(ctx, bson.M{"student_id": studentID, "course_id": courseID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &e, nil
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment domain.Enrollment) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, enrollmentsCollection)
	if err != nil {
		return nil, err
	}
	enrollment.ID = id

	if _, err := r.coll.InsertOne(ctx, enrollment); err != nil {
		// unique (student_id, course_id) index
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	return &enrollment, nil
}

// Sign performs the signed-once transition as a single conditional update:
// the filter only matches while signed_at is still null, so a concurrent
// second sign cannot overwrite the timestamp. A miss is disambiguated with a
// plain lookup.
func (r *EnrollmentRepository) Sign(ctx context.Context, studentID, courseID int, signedAt string) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"student_id": studentID, "course_id": courseID, "signed_at": nil}
	update := bson.M{"$set": bson.M{"signed_at": signedAt}}

	var e domain.Enrollment
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err == nil {
		return &e, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("sign enrollment: %w", err)
	}

	if _, findErr := r.FindByStudentAndCourse(ctx, studentID, courseID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrAlreadySigned
}
