package service

import (
	"context"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/utils"
)

// to mock service in tests
type CategoryService interface {
	Create(ctx context.Context, data domain.CategoryCreationData) (*domain.BoardCategory, error)
	Get(ctx context.Context, id domain.CategoryId) (*domain.BoardCategory, error)
	GetAll(ctx context.Context) ([]domain.BoardCategory, error)
	Update(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) error
	Delete(ctx context.Context, id domain.CategoryId) error
}

type Category struct {
	storage   CategoryStorage
	validator CategoryValidator
}

type CategoryStorage interface {
	SaveCategory(ctx context.Context, category domain.BoardCategory) (*domain.BoardCategory, error)
	Category(ctx context.Context, id domain.CategoryId) (*domain.BoardCategory, error)
	CategoryByTopic(ctx context.Context, topic domain.Topic) (*domain.BoardCategory, error)
	Categories(ctx context.Context) ([]domain.BoardCategory, error)
	UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) error
	DeleteCategory(ctx context.Context, id domain.CategoryId) error
}

type CategoryValidator interface {
	Topic(topic string) error
	SortOrder(sortOrder int) error
}

func NewCategory(storage CategoryStorage, validator CategoryValidator) CategoryService {
	return &Category{storage, validator}
}

func (c *Category) Create(ctx context.Context, data domain.CategoryCreationData) (*domain.BoardCategory, error) {
	data.Topic = utils.SanitizeTopic(data.Topic)
	if err := c.validator.Topic(data.Topic); err != nil {
		return nil, err
	}
	if err := c.validator.SortOrder(data.SortOrder); err != nil {
		return nil, err
	}

	// Uniqueness is reported as a conflict before any write happens.
	if _, err := c.storage.CategoryByTopic(ctx, data.Topic); err == nil {
		return nil, internal_errors.Conflict("Category topic already taken")
	} else if !internal_errors.IsNotFound(err) {
		return nil, err
	}

	return c.storage.SaveCategory(ctx, domain.BoardCategory{Topic: data.Topic, SortOrder: data.SortOrder})
}

func (c *Category) Get(ctx context.Context, id domain.CategoryId) (*domain.BoardCategory, error) {
	return c.storage.Category(ctx, id)
}

func (c *Category) GetAll(ctx context.Context) ([]domain.BoardCategory, error) {
	return c.storage.Categories(ctx)
}

// Update renames the category and/or changes its sort order. Category snapshots
// embedded in existing boards deliberately keep the old topic.
func (c *Category) Update(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) error {
	data.Topic = utils.SanitizeTopic(data.Topic)
	if err := c.validator.Topic(data.Topic); err != nil {
		return err
	}
	if err := c.validator.SortOrder(data.SortOrder); err != nil {
		return err
	}
	return c.storage.UpdateCategory(ctx, id, data)
}

// Delete rejects while the category still contains boards; callers must move
// or delete them first.
func (c *Category) Delete(ctx context.Context, id domain.CategoryId) error {
	return c.storage.DeleteCategory(ctx, id)
}
