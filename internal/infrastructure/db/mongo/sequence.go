package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// sequence allocates the next integer id for a collection. Ids come from a
// per-collection counter document incremented with a single FindOneAndUpdate,
// which MongoDB serializes, so two concurrent creates can never receive the
// same id. Counters are seeded from the collection's current max id at boot
// (ensure); since deletion is unsupported, counter+1 and max+1 stay
// equivalent, and the unique index on _id backstops the invariant.
type sequence struct {
	db *mongo.Database
}

type counterDoc struct {
	Value int `bson:"value"`
}

// next returns the next id for collection. The counter must have been
// ensured at startup.
func (s *sequence) next(ctx context.Context, collection string) (int, error) {
	res := s.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc counterDoc
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("next id for %s: %w", collection, err)
	}
	return doc.Value, nil
}

// ensure creates the counter document for collection, seeded from the
// collection's current max _id. $setOnInsert keeps concurrent callers from
// resetting an existing counter.
func (s *sequence) ensure(ctx context.Context, collection string) error {
	var maxDoc struct {
		ID int `bson:"_id"`
	}
	err := s.db.Collection(collection).
		FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).
		Decode(&maxDoc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = s.db.Collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": collection},
		bson.M{"$setOnInsert": bson.M{"value": maxDoc.ID}},
		options.Update().SetUpsert(true),
	)
	return err
}
