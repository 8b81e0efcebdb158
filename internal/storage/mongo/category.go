package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
)

func (s *Storage) SaveCategory(ctx context.Context, category domain.BoardCategory) (*domain.BoardCategory, error) {
	if category.Boards == nil {
		category.Boards = []domain.BoardId{}
	}

	res, err := s.categories.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, internal_errors.Conflict("Category topic already taken")
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	category.Id = res.InsertedID.(domain.CategoryId)
	return &category, nil
}

func (s *Storage) Category(ctx context.Context, id domain.CategoryId) (*domain.BoardCategory, error) {
	var category domain.BoardCategory
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("Category not found")
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &category, nil
}

func (s *Storage) CategoryByTopic(ctx context.Context, topic domain.Topic) (*domain.BoardCategory, error) {
	var category domain.BoardCategory
	err := s.categories.FindOne(ctx, bson.M{"topic": topic}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("Category not found")
		}
		return nil, fmt.Errorf("failed to fetch category by topic: %w", err)
	}
	return &category, nil
}

func (s *Storage) Categories(ctx context.Context) ([]domain.BoardCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "topic", Value: 1}})
	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []domain.BoardCategory
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if categories == nil {
		categories = []domain.BoardCategory{}
	}
	return categories, nil
}

// UpdateCategory renames the category and/or changes its sort order. Snapshots
// already embedded in boards keep the old topic on purpose.
func (s *Storage) UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) error {
	update := bson.M{"$set": bson.M{"topic": data.Topic, "sortOrder": data.SortOrder}}
	res, err := s.categories.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return internal_errors.Conflict("Category topic already taken")
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Category not found")
	}
	return nil
}

// DeleteCategory removes the category only while its board list is empty.
// The size filter makes the policy check and the delete one atomic write.
func (s *Storage) DeleteCategory(ctx context.Context, id domain.CategoryId) error {
	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id, "boards": bson.M{"$size": 0}})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		if _, err := s.Category(ctx, id); err != nil {
			return err
		}
		return internal_errors.Conflict("Category still contains boards")
	}
	return nil
}
