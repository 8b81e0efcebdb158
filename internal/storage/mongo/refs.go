package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	internal_errors "github.com/parlor-dev/parlor/internal/errors"
)

// attach appends childId to the parent's ordered reference list. $push is the
// store's atomic list-append primitive, so concurrent attaches on the same
// parent never lose an update.
func attach(ctx context.Context, coll *mongo.Collection, parentId primitive.ObjectID, field string, childId primitive.ObjectID) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": parentId}, bson.M{"$push": bson.M{field: childId}})
	if err != nil {
		return fmt.Errorf("failed to attach to %s.%s: %w", coll.Name(), field, err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Parent document not found")
	}
	return nil
}

// detach removes childId from the parent's reference list. An absent id is a
// no-op, which keeps delete operations idempotent under retry; the rest of the
// list keeps its insertion order.
func detach(ctx context.Context, coll *mongo.Collection, parentId primitive.ObjectID, field string, childId primitive.ObjectID) error {
	_, err := coll.UpdateOne(ctx, bson.M{"_id": parentId}, bson.M{"$pull": bson.M{field: childId}})
	if err != nil {
		return fmt.Errorf("failed to detach from %s.%s: %w", coll.Name(), field, err)
	}
	return nil
}

// detachMany removes every id in childIds from the matching parents' lists in
// one write. Used by cascading deletes to clean owner lists.
func detachMany(ctx context.Context, coll *mongo.Collection, field string, childIds []primitive.ObjectID) error {
	if len(childIds) == 0 {
		return nil
	}
	filter := bson.M{field: bson.M{"$in": childIds}}
	update := bson.M{"$pull": bson.M{field: bson.M{"$in": childIds}}}
	if _, err := coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to detach from %s.%s: %w", coll.Name(), field, err)
	}
	return nil
}
