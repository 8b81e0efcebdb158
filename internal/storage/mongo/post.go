package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
)

// CreatePost inserts the post, registers its id in the thread's post list and
// the author's post list, and advances the thread's lastPost reference. All
// four writes commit or none do.
func (s *Storage) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	post.CreatedAt = time.Now().UTC()

	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.posts.InsertOne(sc, post)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		post.Id = res.InsertedID.(domain.PostId)

		if err := attach(sc, s.threads, post.Thread.ThreadId, "posts", post.Id); err != nil {
			return err
		}
		if _, err := s.threads.UpdateOne(sc, bson.M{"_id": post.Thread.ThreadId},
			bson.M{"$set": bson.M{"lastPost": post.Id}}); err != nil {
			return fmt.Errorf("failed to advance lastPost: %w", err)
		}
		return attach(sc, s.users, post.Author.AuthorId, "posts", post.Id)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Storage) Post(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	var post domain.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

func (s *Storage) PostsByThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.posts.Find(ctx, bson.M{"thread.threadId": threadId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []domain.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (s *Storage) UpdatePostContent(ctx context.Context, id domain.PostId, content domain.PostContent) error {
	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}

// DeletePost detaches the post from its thread's and author's lists, deletes
// the document, and if the post was the thread's lastPost recomputes lastPost
// to the new tail of the thread's post list (or null when none remain).
func (s *Storage) DeletePost(ctx context.Context, post *domain.Post) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := detach(sc, s.threads, post.Thread.ThreadId, "posts", post.Id); err != nil {
			return err
		}
		if err := detach(sc, s.users, post.Author.AuthorId, "posts", post.Id); err != nil {
			return err
		}
		res, err := s.posts.DeleteOne(sc, bson.M{"_id": post.Id})
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if res.DeletedCount == 0 {
			return internal_errors.NotFound("Post not found")
		}
		return s.recomputeLastPost(sc, post.Thread.ThreadId, post.Id)
	})
}

// recomputeLastPost sets thread.lastPost to the final element of the thread's
// post list when the deleted post was the current lastPost.
func (s *Storage) recomputeLastPost(ctx context.Context, threadId domain.ThreadId, deletedId domain.PostId) error {
	var thread domain.Thread
	err := s.threads.FindOne(ctx, bson.M{"_id": threadId}).Decode(&thread)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Thread already cascaded away; nothing to recompute.
			return nil
		}
		return fmt.Errorf("failed to fetch thread for lastPost recompute: %w", err)
	}
	if thread.LastPost == nil || *thread.LastPost != deletedId {
		return nil
	}

	var newLast *domain.PostId
	if n := len(thread.Posts); n > 0 {
		newLast = &thread.Posts[n-1]
	}
	if _, err := s.threads.UpdateOne(ctx, bson.M{"_id": threadId},
		bson.M{"$set": bson.M{"lastPost": newLast}}); err != nil {
		return fmt.Errorf("failed to recompute lastPost: %w", err)
	}
	return nil
}
