package service

import (
	"context"

	"github.com/parlor-dev/parlor/internal/domain"
	"github.com/parlor-dev/parlor/internal/utils"
)

// to mock service in tests
type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error)
	Get(ctx context.Context, id domain.PostId) (*domain.Post, error)
	UpdateContent(ctx context.Context, id domain.PostId, content domain.PostContent) error
	Delete(ctx context.Context, id domain.PostId) error
}

type Post struct {
	storage   PostStorage
	validator PostValidator
}

type PostStorage interface {
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	Post(ctx context.Context, id domain.PostId) (*domain.Post, error)
	UpdatePostContent(ctx context.Context, id domain.PostId, content domain.PostContent) error
	DeletePost(ctx context.Context, post *domain.Post) error

	User(ctx context.Context, id domain.UserId) (*domain.User, error)
	Thread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error)
}

type PostValidator interface {
	Content(content string) error
}

func NewPost(storage PostStorage, validator PostValidator) PostService {
	return &Post{storage, validator}
}

// Create verifies both the author and the thread before anything is written,
// then snapshots them into the new post. The insert, both list attachments
// and the thread's lastPost advance share one transaction in storage.
func (p *Post) Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	data.Content = utils.SanitizePost(data.Content)
	if err := p.validator.Content(data.Content); err != nil {
		return nil, err
	}

	author, err := p.storage.User(ctx, data.AuthorId)
	if err != nil {
		return nil, err
	}
	thread, err := p.storage.Thread(ctx, data.ThreadId)
	if err != nil {
		return nil, err
	}

	post := domain.Post{
		Content: data.Content,
		Author:  domain.NewAuthorSnapshot(author),
		Thread:  domain.NewThreadSnapshot(thread),
	}
	return p.storage.CreatePost(ctx, post)
}

func (p *Post) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return p.storage.Post(ctx, id)
}

func (p *Post) UpdateContent(ctx context.Context, id domain.PostId, content domain.PostContent) error {
	content = utils.SanitizePost(content)
	if err := p.validator.Content(content); err != nil {
		return err
	}
	return p.storage.UpdatePostContent(ctx, id, content)
}

// Delete resolves the owning thread and author from the post's own snapshots,
// not from separately fetched live parents. Storage detaches the post from
// both lists before the document is removed.
func (p *Post) Delete(ctx context.Context, id domain.PostId) error {
	post, err := p.storage.Post(ctx, id)
	if err != nil {
		return err
	}
	return p.storage.DeletePost(ctx, post)
}
