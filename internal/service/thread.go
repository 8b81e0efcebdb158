package service

import (
	"context"

	"github.com/parlor-dev/parlor/internal/domain"
	"github.com/parlor-dev/parlor/internal/utils"
)

// to mock service in tests
type ThreadService interface {
	Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error)
	Get(ctx context.Context, id domain.ThreadId) (*domain.Thread, []domain.Post, error)
	GetByBoard(ctx context.Context, boardId domain.BoardId, page int) ([]domain.Thread, error)
	UpdateTopic(ctx context.Context, id domain.ThreadId, topic domain.Topic) error
	Delete(ctx context.Context, id domain.ThreadId) error
}

type Thread struct {
	storage        ThreadStorage
	validator      ThreadValidator
	threadsPerPage int
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, thread domain.Thread) (*domain.Thread, error)
	Thread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error)
	ThreadsByBoard(ctx context.Context, boardId domain.BoardId, page, perPage int) ([]domain.Thread, error)
	UpdateThreadTopic(ctx context.Context, id domain.ThreadId, topic domain.Topic) error
	DeleteThread(ctx context.Context, thread *domain.Thread) error

	User(ctx context.Context, id domain.UserId) (*domain.User, error)
	Board(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	PostsByThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Post, error)
}

type ThreadValidator interface {
	Topic(topic string) error
}

func NewThread(storage ThreadStorage, validator ThreadValidator, threadsPerPage int) ThreadService {
	return &Thread{storage, validator, threadsPerPage}
}

// Create verifies both the author and the board before anything is written,
// then snapshots them into the new thread. The thread starts with an empty
// post list and no lastPost.
func (t *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error) {
	data.Topic = utils.SanitizeTopic(data.Topic)
	if err := t.validator.Topic(data.Topic); err != nil {
		return nil, err
	}

	author, err := t.storage.User(ctx, data.AuthorId)
	if err != nil {
		return nil, err
	}
	board, err := t.storage.Board(ctx, data.BoardId)
	if err != nil {
		return nil, err
	}

	thread := domain.Thread{
		Topic:  data.Topic,
		Author: domain.NewAuthorSnapshot(author),
		Board:  domain.NewBoardSnapshot(board),
	}
	return t.storage.CreateThread(ctx, thread)
}

func (t *Thread) Get(ctx context.Context, id domain.ThreadId) (*domain.Thread, []domain.Post, error) {
	thread, err := t.storage.Thread(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	posts, err := t.storage.PostsByThread(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return thread, posts, nil
}

func (t *Thread) GetByBoard(ctx context.Context, boardId domain.BoardId, page int) ([]domain.Thread, error) {
	page = max(1, page)
	if _, err := t.storage.Board(ctx, boardId); err != nil {
		return nil, err
	}
	return t.storage.ThreadsByBoard(ctx, boardId, page, t.threadsPerPage)
}

func (t *Thread) UpdateTopic(ctx context.Context, id domain.ThreadId, topic domain.Topic) error {
	topic = utils.SanitizeTopic(topic)
	if err := t.validator.Topic(topic); err != nil {
		return err
	}
	return t.storage.UpdateThreadTopic(ctx, id, topic)
}

// Delete cascades the thread's posts downstream.
func (t *Thread) Delete(ctx context.Context, id domain.ThreadId) error {
	thread, err := t.storage.Thread(ctx, id)
	if err != nil {
		return err
	}
	return t.storage.DeleteThread(ctx, thread)
}
