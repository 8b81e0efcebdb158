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

// CreateThread inserts the thread and registers its id both in the board's
// thread list and in the author's thread list, atomically.
func (s *Storage) CreateThread(ctx context.Context, thread domain.Thread) (*domain.Thread, error) {
	thread.CreatedAt = time.Now().UTC()
	if thread.Posts == nil {
		thread.Posts = []domain.PostId{}
	}
	thread.LastPost = nil

	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.threads.InsertOne(sc, thread)
		if err != nil {
			return fmt.Errorf("failed to insert thread: %w", err)
		}
		thread.Id = res.InsertedID.(domain.ThreadId)

		if err := attach(sc, s.boards, thread.Board.BoardId, "threads", thread.Id); err != nil {
			return err
		}
		return attach(sc, s.users, thread.Author.AuthorId, "threads", thread.Id)
	})
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *Storage) Thread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error) {
	var thread domain.Thread
	err := s.threads.FindOne(ctx, bson.M{"_id": id}).Decode(&thread)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("Thread not found")
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return &thread, nil
}

// ThreadsByBoard pages through a board's threads in creation order.
func (s *Storage) ThreadsByBoard(ctx context.Context, boardId domain.BoardId, page, perPage int) ([]domain.Thread, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := s.threads.Find(ctx, bson.M{"board.boardId": boardId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer cursor.Close(ctx)

	var threads []domain.Thread
	if err := cursor.All(ctx, &threads); err != nil {
		return nil, fmt.Errorf("failed to decode threads: %w", err)
	}
	if threads == nil {
		threads = []domain.Thread{}
	}
	return threads, nil
}

// UpdateThreadTopic renames the thread. Post snapshots keep the old topic.
func (s *Storage) UpdateThreadTopic(ctx context.Context, id domain.ThreadId, topic domain.Topic) error {
	res, err := s.threads.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"topic": topic}})
	if err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}

// DeleteThread cascades to the thread's posts, detaches every removed id from
// its owner's lists and from the board, then deletes the thread document.
func (s *Storage) DeleteThread(ctx context.Context, thread *domain.Thread) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		postIds, err := s.collectPostIds(sc, []domain.ThreadId{thread.Id})
		if err != nil {
			return err
		}

		if err := detachMany(sc, s.users, "posts", postIds); err != nil {
			return err
		}
		if len(postIds) > 0 {
			if _, err := s.posts.DeleteMany(sc, bson.M{"_id": bson.M{"$in": postIds}}); err != nil {
				return fmt.Errorf("failed to cascade posts: %w", err)
			}
		}
		if err := detach(sc, s.boards, thread.Board.BoardId, "threads", thread.Id); err != nil {
			return err
		}
		if err := detach(sc, s.users, thread.Author.AuthorId, "threads", thread.Id); err != nil {
			return err
		}
		res, err := s.threads.DeleteOne(sc, bson.M{"_id": thread.Id})
		if err != nil {
			return fmt.Errorf("failed to delete thread: %w", err)
		}
		if res.DeletedCount == 0 {
			return internal_errors.NotFound("Thread not found")
		}
		return nil
	})
}
