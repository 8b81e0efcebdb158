package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/utils"
)

// MockCategoryStorage mocks the CategoryStorage interface.
type MockCategoryStorage struct {
	saveCategoryFunc    func(category domain.BoardCategory) (*domain.BoardCategory, error)
	categoryFunc        func(id domain.CategoryId) (*domain.BoardCategory, error)
	categoryByTopicFunc func(topic domain.Topic) (*domain.BoardCategory, error)
	categoriesFunc      func() ([]domain.BoardCategory, error)
	updateCategoryFunc  func(id domain.CategoryId, data domain.CategoryUpdateData) error
	deleteCategoryFunc  func(id domain.CategoryId) error
}

func (m *MockCategoryStorage) SaveCategory(_ context.Context, category domain.BoardCategory) (*domain.BoardCategory, error) {
	if m.saveCategoryFunc != nil {
		return m.saveCategoryFunc(category)
	}
	category.Id = primitive.NewObjectID()
	return &category, nil
}

func (m *MockCategoryStorage) Category(_ context.Context, id domain.CategoryId) (*domain.BoardCategory, error) {
	if m.categoryFunc != nil {
		return m.categoryFunc(id)
	}
	return &domain.BoardCategory{Id: id}, nil
}

func (m *MockCategoryStorage) CategoryByTopic(_ context.Context, topic domain.Topic) (*domain.BoardCategory, error) {
	if m.categoryByTopicFunc != nil {
		return m.categoryByTopicFunc(topic)
	}
	return nil, internal_errors.NotFound("Category not found")
}

func (m *MockCategoryStorage) Categories(_ context.Context) ([]domain.BoardCategory, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc()
	}
	return []domain.BoardCategory{}, nil
}

func (m *MockCategoryStorage) UpdateCategory(_ context.Context, id domain.CategoryId, data domain.CategoryUpdateData) error {
	if m.updateCategoryFunc != nil {
		return m.updateCategoryFunc(id, data)
	}
	return nil
}

func (m *MockCategoryStorage) DeleteCategory(_ context.Context, id domain.CategoryId) error {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(id)
	}
	return nil
}

func TestCategoryCreate(t *testing.T) {
	ctx := context.Background()
	validator := &utils.CategoryValidator{}

	t.Run("Success", func(t *testing.T) {
		s := NewCategory(&MockCategoryStorage{}, validator)
		category, err := s.Create(ctx, domain.CategoryCreationData{Topic: "General", SortOrder: 1})
		require.NoError(t, err)
		assert.Equal(t, "General", category.Topic)
		assert.Equal(t, 1, category.SortOrder)
		assert.False(t, category.Id.IsZero())
	})

	t.Run("EmptyTopic", func(t *testing.T) {
		s := NewCategory(&MockCategoryStorage{}, validator)
		_, err := s.Create(ctx, domain.CategoryCreationData{Topic: "   ", SortOrder: 1})
		assert.True(t, internal_errors.IsValidation(err))
	})

	t.Run("NegativeSortOrder", func(t *testing.T) {
		saved := false
		storage := &MockCategoryStorage{
			saveCategoryFunc: func(category domain.BoardCategory) (*domain.BoardCategory, error) {
				saved = true
				return &category, nil
			},
		}
		s := NewCategory(storage, validator)
		_, err := s.Create(ctx, domain.CategoryCreationData{Topic: "General", SortOrder: -1})
		assert.True(t, internal_errors.IsValidation(err))
		assert.False(t, saved, "validation failures must never reach the store layer")
	})

	t.Run("DuplicateTopicIsConflict", func(t *testing.T) {
		saved := false
		storage := &MockCategoryStorage{
			categoryByTopicFunc: func(topic domain.Topic) (*domain.BoardCategory, error) {
				return &domain.BoardCategory{Topic: topic}, nil
			},
			saveCategoryFunc: func(category domain.BoardCategory) (*domain.BoardCategory, error) {
				saved = true
				return &category, nil
			},
		}
		s := NewCategory(storage, validator)
		_, err := s.Create(ctx, domain.CategoryCreationData{Topic: "General", SortOrder: 1})
		assert.True(t, internal_errors.IsConflict(err))
		assert.False(t, saved)
	})

	t.Run("TopicIsSanitized", func(t *testing.T) {
		var savedTopic string
		storage := &MockCategoryStorage{
			saveCategoryFunc: func(category domain.BoardCategory) (*domain.BoardCategory, error) {
				savedTopic = category.Topic
				return &category, nil
			},
		}
		s := NewCategory(storage, validator)
		_, err := s.Create(ctx, domain.CategoryCreationData{Topic: "<b>General</b>", SortOrder: 0})
		require.NoError(t, err)
		assert.Equal(t, "General", savedTopic)
	})
}

func TestCategoryUpdate(t *testing.T) {
	ctx := context.Background()
	validator := &utils.CategoryValidator{}

	t.Run("Success", func(t *testing.T) {
		id := primitive.NewObjectID()
		var got domain.CategoryUpdateData
		storage := &MockCategoryStorage{
			updateCategoryFunc: func(gotId domain.CategoryId, data domain.CategoryUpdateData) error {
				assert.Equal(t, id, gotId)
				got = data
				return nil
			},
		}
		s := NewCategory(storage, validator)
		require.NoError(t, s.Update(ctx, id, domain.CategoryUpdateData{Topic: "C1-renamed", SortOrder: 2}))
		assert.Equal(t, "C1-renamed", got.Topic)
		assert.Equal(t, 2, got.SortOrder)
	})

	t.Run("InvalidSortOrder", func(t *testing.T) {
		s := NewCategory(&MockCategoryStorage{}, validator)
		err := s.Update(ctx, primitive.NewObjectID(), domain.CategoryUpdateData{Topic: "ok", SortOrder: -5})
		assert.True(t, internal_errors.IsValidation(err))
	})
}

func TestCategoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectedWhileNonEmpty", func(t *testing.T) {
		storage := &MockCategoryStorage{
			deleteCategoryFunc: func(id domain.CategoryId) error {
				return internal_errors.Conflict("Category still contains boards")
			},
		}
		s := NewCategory(storage, &utils.CategoryValidator{})
		assert.True(t, internal_errors.IsConflict(s.Delete(ctx, primitive.NewObjectID())))
	})

	t.Run("Missing", func(t *testing.T) {
		storage := &MockCategoryStorage{
			deleteCategoryFunc: func(id domain.CategoryId) error {
				return internal_errors.NotFound("Category not found")
			},
		}
		s := NewCategory(storage, &utils.CategoryValidator{})
		assert.True(t, internal_errors.IsNotFound(s.Delete(ctx, primitive.NewObjectID())))
	})
}
