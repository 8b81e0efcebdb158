package service

import (
	"context"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/utils"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, data domain.BoardCreationData) (*domain.Board, error)
	Get(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	GetByCategory(ctx context.Context, categoryId domain.CategoryId) ([]domain.Board, error)
	Update(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) error
	Delete(ctx context.Context, id domain.BoardId) error
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, board domain.Board) (*domain.Board, error)
	Board(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	BoardByTopic(ctx context.Context, topic domain.Topic) (*domain.Board, error)
	BoardsByCategory(ctx context.Context, categoryId domain.CategoryId) ([]domain.Board, error)
	UpdateBoardFields(ctx context.Context, id domain.BoardId, topic domain.Topic, description string) error
	MoveBoard(ctx context.Context, board *domain.Board, newCategory *domain.BoardCategory, topic domain.Topic, description string) error
	DeleteBoard(ctx context.Context, board *domain.Board) error

	Category(ctx context.Context, id domain.CategoryId) (*domain.BoardCategory, error)
}

type BoardValidator interface {
	Topic(topic string) error
	Description(description string) error
}

func NewBoard(storage BoardStorage, validator BoardValidator) BoardService {
	return &Board{storage, validator}
}

// Create verifies the owning category, snapshots it into the new board and
// registers the board id in the category's list (one transaction downstream).
func (b *Board) Create(ctx context.Context, data domain.BoardCreationData) (*domain.Board, error) {
	data.Topic = utils.SanitizeTopic(data.Topic)
	if err := b.validator.Topic(data.Topic); err != nil {
		return nil, err
	}
	if err := b.validator.Description(data.Description); err != nil {
		return nil, err
	}

	category, err := b.storage.Category(ctx, data.CategoryId)
	if err != nil {
		return nil, err
	}

	if _, err := b.storage.BoardByTopic(ctx, data.Topic); err == nil {
		return nil, internal_errors.Conflict("Board topic already taken")
	} else if !internal_errors.IsNotFound(err) {
		return nil, err
	}

	board := domain.Board{
		Topic:       data.Topic,
		Description: data.Description,
		Category:    domain.NewCategorySnapshot(category),
	}
	return b.storage.CreateBoard(ctx, board)
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	return b.storage.Board(ctx, id)
}

func (b *Board) GetByCategory(ctx context.Context, categoryId domain.CategoryId) ([]domain.Board, error) {
	if _, err := b.storage.Category(ctx, categoryId); err != nil {
		return nil, err
	}
	return b.storage.BoardsByCategory(ctx, categoryId)
}

// Update persists field changes; when the target category differs from the
// board's current snapshot it also re-homes the board (detach old list, attach
// new list, recompute snapshot) in one atomic unit downstream.
func (b *Board) Update(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) error {
	data.Topic = utils.SanitizeTopic(data.Topic)
	if err := b.validator.Topic(data.Topic); err != nil {
		return err
	}
	if err := b.validator.Description(data.Description); err != nil {
		return err
	}

	board, err := b.storage.Board(ctx, id)
	if err != nil {
		return err
	}

	if data.CategoryId == nil || *data.CategoryId == board.Category.CategoryId {
		return b.storage.UpdateBoardFields(ctx, id, data.Topic, data.Description)
	}

	newCategory, err := b.storage.Category(ctx, *data.CategoryId)
	if err != nil {
		return err
	}
	return b.storage.MoveBoard(ctx, board, newCategory, data.Topic, data.Description)
}

// Delete cascades the board's threads and posts downstream.
func (b *Board) Delete(ctx context.Context, id domain.BoardId) error {
	board, err := b.storage.Board(ctx, id)
	if err != nil {
		return err
	}
	return b.storage.DeleteBoard(ctx, board)
}
