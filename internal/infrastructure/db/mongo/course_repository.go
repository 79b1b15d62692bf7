package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
)

// CourseRepository persists courses in the courses collection.
type CourseRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := []domain.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id int) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Course
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course %d: %w", id, err)
	}
	return &c, nil
}

func (r *CourseRepository) Create(ctx context.Context, course domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, coursesCollection)
	if err != nil {
		return nil, err
	}
	course.ID = id

	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	return &course, nil
}
