package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parlor-dev/parlor/internal/config"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/logger"
)

// Storage provides data access to the MongoDB collections backing the forum.
// One collection per entity kind; cross-document consistency is enforced
// exclusively through withTransaction.
type Storage struct {
	client     *mongo.Client
	db         *mongo.Database
	users      *mongo.Collection
	categories *mongo.Collection
	boards     *mongo.Collection
	threads    *mongo.Collection
	posts      *mongo.Collection
	cfg        *config.Config
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to mongodb")
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to mongodb")

	db := client.Database(cfg.Private.Mongo.Database)
	storage := &Storage{
		client:     client,
		db:         db,
		users:      db.Collection("users"),
		categories: db.Collection("boardCategories"),
		boards:     db.Collection("boards"),
		threads:    db.Collection("threads"),
		posts:      db.Collection("posts"),
		cfg:        cfg,
	}
	if err := storage.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Private.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

func (s *Storage) Cleanup(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping reports whether the server is reachable. Used by readiness probes.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		}},
		{s.categories, []mongo.IndexModel{
			{Keys: bson.D{{Key: "topic", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "sortOrder", Value: 1}}},
		}},
		{s.boards, []mongo.IndexModel{
			{Keys: bson.D{{Key: "topic", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category.categoryId", Value: 1}}},
		}},
		{s.threads, []mongo.IndexModel{
			{Keys: bson.D{{Key: "board.boardId", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "author.authorId", Value: 1}}},
		}},
		{s.posts, []mongo.IndexModel{
			{Keys: bson.D{{Key: "thread.threadId", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "author.authorId", Value: 1}}},
		}},
	}

	for _, ix := range indexes {
		if _, err := ix.coll.Indexes().CreateMany(ctx, ix.models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", ix.coll.Name(), err)
		}
	}
	return nil
}

// withTransaction executes fn inside a single mongo session. The unit commits only
// if fn returns nil; any error aborts every write made through the session context,
// so callers observe either the fully-updated state or the fully-original one.
// The configured timeout bounds the session lifetime; a timed-out or aborted unit
// surfaces as a retryable transaction error.
func (s *Storage) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout())
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		logger.Log.Error("failed to start mongo session", "error", err)
		return internal_errors.Transaction("Failed to start transaction")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		// Typed errors raised inside fn keep their classification; everything else
		// is an aborted unit the caller may retry.
		if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
			return e
		}
		logger.Log.Error("transaction aborted", "error", err)
		return internal_errors.Transaction("Transaction aborted: " + err.Error())
	}
	return nil
}

func (s *Storage) txTimeout() time.Duration {
	if s.cfg.Public.TxTimeout > 0 {
		return s.cfg.Public.TxTimeout
	}
	return 10 * time.Second
}
