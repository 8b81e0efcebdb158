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

// CreateBoard inserts the board and registers its id in the owning category's
// board list as one atomic unit.
func (s *Storage) CreateBoard(ctx context.Context, board domain.Board) (*domain.Board, error) {
	if board.Threads == nil {
		board.Threads = []domain.ThreadId{}
	}

	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.boards.InsertOne(sc, board)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return internal_errors.Conflict("Board topic already taken")
			}
			return fmt.Errorf("failed to insert board: %w", err)
		}
		board.Id = res.InsertedID.(domain.BoardId)
		return attach(sc, s.categories, board.Category.CategoryId, "boards", board.Id)
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) Board(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	var board domain.Board
	err := s.boards.FindOne(ctx, bson.M{"_id": id}).Decode(&board)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}
	return &board, nil
}

func (s *Storage) BoardByTopic(ctx context.Context, topic domain.Topic) (*domain.Board, error) {
	var board domain.Board
	err := s.boards.FindOne(ctx, bson.M{"topic": topic}).Decode(&board)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, fmt.Errorf("failed to fetch board by topic: %w", err)
	}
	return &board, nil
}

func (s *Storage) BoardsByCategory(ctx context.Context, categoryId domain.CategoryId) ([]domain.Board, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.boards.Find(ctx, bson.M{"category.categoryId": categoryId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer cursor.Close(ctx)

	var boards []domain.Board
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, fmt.Errorf("failed to decode boards: %w", err)
	}
	if boards == nil {
		boards = []domain.Board{}
	}
	return boards, nil
}

// UpdateBoardFields persists topic/description changes without touching the
// category relationship. Single-document write, no transaction needed.
func (s *Storage) UpdateBoardFields(ctx context.Context, id domain.BoardId, topic domain.Topic, description string) error {
	update := bson.M{"$set": bson.M{"topic": topic, "description": description}}
	res, err := s.boards.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return internal_errors.Conflict("Board topic already taken")
		}
		return fmt.Errorf("failed to update board: %w", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}

// MoveBoard re-homes the board under newCategory: detach from the old category's
// list, attach to the new one, recompute the embedded snapshot and persist the
// field changes in one atomic unit, so a concurrent reader never sees the board
// in zero or two category lists.
func (s *Storage) MoveBoard(ctx context.Context, board *domain.Board, newCategory *domain.BoardCategory, topic domain.Topic, description string) error {
	snapshot := domain.NewCategorySnapshot(newCategory)

	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// The caller's copy may predate a concurrent move, and the callback
		// re-runs on write conflicts; detach from the category the board is
		// in right now, not the one it was fetched under.
		current, err := s.Board(sc, board.Id)
		if err != nil {
			return err
		}
		if err := detach(sc, s.categories, current.Category.CategoryId, "boards", board.Id); err != nil {
			return err
		}
		if err := attach(sc, s.categories, newCategory.Id, "boards", board.Id); err != nil {
			return err
		}
		update := bson.M{"$set": bson.M{"topic": topic, "description": description, "category": snapshot}}
		res, err := s.boards.UpdateOne(sc, bson.M{"_id": board.Id}, update)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return internal_errors.Conflict("Board topic already taken")
			}
			return fmt.Errorf("failed to update moved board: %w", err)
		}
		if res.MatchedCount == 0 {
			return internal_errors.NotFound("Board not found")
		}
		return nil
	})
}

// DeleteBoard cascades: every thread of the board and every post of those
// threads is removed, owner lists are cleaned, the board is detached from its
// category and deleted. One transaction, no orphans on failure.
func (s *Storage) DeleteBoard(ctx context.Context, board *domain.Board) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// Re-read inside the session so the detach below targets the category
		// the board belongs to right now, even with a stale caller handle or
		// a retried callback.
		current, err := s.Board(sc, board.Id)
		if err != nil {
			return err
		}

		threadIds, err := s.collectThreadIds(sc, board.Id)
		if err != nil {
			return err
		}

		postIds, err := s.collectPostIds(sc, threadIds)
		if err != nil {
			return err
		}

		if err := detachMany(sc, s.users, "posts", postIds); err != nil {
			return err
		}
		if err := detachMany(sc, s.users, "threads", threadIds); err != nil {
			return err
		}
		if len(postIds) > 0 {
			if _, err := s.posts.DeleteMany(sc, bson.M{"_id": bson.M{"$in": postIds}}); err != nil {
				return fmt.Errorf("failed to cascade posts: %w", err)
			}
		}
		if len(threadIds) > 0 {
			if _, err := s.threads.DeleteMany(sc, bson.M{"_id": bson.M{"$in": threadIds}}); err != nil {
				return fmt.Errorf("failed to cascade threads: %w", err)
			}
		}
		if err := detach(sc, s.categories, current.Category.CategoryId, "boards", board.Id); err != nil {
			return err
		}
		res, err := s.boards.DeleteOne(sc, bson.M{"_id": board.Id})
		if err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		if res.DeletedCount == 0 {
			return internal_errors.NotFound("Board not found")
		}
		return nil
	})
}

func (s *Storage) collectThreadIds(ctx context.Context, boardId domain.BoardId) ([]domain.ThreadId, error) {
	cursor, err := s.threads.Find(ctx, bson.M{"board.boardId": boardId},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to collect thread ids: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Id domain.ThreadId `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode thread ids: %w", err)
	}

	threadIds := make([]domain.ThreadId, 0, len(rows))
	for _, row := range rows {
		threadIds = append(threadIds, row.Id)
	}
	return threadIds, nil
}

func (s *Storage) collectPostIds(ctx context.Context, threadIds []domain.ThreadId) ([]domain.PostId, error) {
	if len(threadIds) == 0 {
		return nil, nil
	}
	cursor, err := s.posts.Find(ctx, bson.M{"thread.threadId": bson.M{"$in": threadIds}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to collect post ids: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Id domain.PostId `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode post ids: %w", err)
	}

	postIds := make([]domain.PostId, 0, len(rows))
	for _, row := range rows {
		postIds = append(postIds, row.Id)
	}
	return postIds, nil
}
