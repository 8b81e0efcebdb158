package mongo

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parlor-dev/parlor/internal/config"
	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *mongodb.MongoDBContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *mongodb.MongoDBContainer) {
	// Multi-document transactions require a replica set, even a single-node one.
	container, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to obtain connection string: %s", err)
	}

	cfg := &config.Config{
		Public:  config.Public{TxTimeout: 10 * time.Second, ThreadsPerPage: 3},
		Private: config.Private{Mongo: config.Mongo{URI: uri, Database: "parlor_test"}},
	}
	storage, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to mongodb container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *mongodb.MongoDBContainer) {
	if err := storage.Cleanup(ctx); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func generateString(t *testing.T) string {
	t.Helper()
	return uuid.NewString()
}

func requireNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, internal_errors.IsNotFound(err), "expected not-found, got: %v", err)
}

func requireConflictError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, internal_errors.IsConflict(err), "expected conflict, got: %v", err)
}

// mustUser persists a fresh user and registers cleanup that tolerates the user
// already being gone or still owning content the test left behind.
func mustUser(t *testing.T, ctx context.Context) *domain.User {
	t.Helper()
	name := generateString(t)
	user, err := storage.SaveUser(ctx, domain.User{
		Username: name,
		Email:    name + "@example.com",
		PassHash: "hash",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.DeleteUser(ctx, user.Id) })
	return user
}

func mustCategory(t *testing.T, ctx context.Context) *domain.BoardCategory {
	t.Helper()
	category, err := storage.SaveCategory(ctx, domain.BoardCategory{Topic: generateString(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.DeleteCategory(ctx, category.Id) })
	return category
}

func mustBoard(t *testing.T, ctx context.Context, category *domain.BoardCategory) *domain.Board {
	t.Helper()
	board, err := storage.CreateBoard(ctx, domain.Board{
		Topic:       generateString(t),
		Description: "test board",
		Category:    domain.NewCategorySnapshot(category),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.DeleteBoard(ctx, board) })
	return board
}

func mustThread(t *testing.T, ctx context.Context, author *domain.User, board *domain.Board) *domain.Thread {
	t.Helper()
	thread, err := storage.CreateThread(ctx, domain.Thread{
		Topic:  generateString(t),
		Author: domain.NewAuthorSnapshot(author),
		Board:  domain.NewBoardSnapshot(board),
	})
	require.NoError(t, err)
	return thread
}

func mustPost(t *testing.T, ctx context.Context, author *domain.User, thread *domain.Thread) *domain.Post {
	t.Helper()
	post, err := storage.CreatePost(ctx, domain.Post{
		Content: "post " + generateString(t),
		Author:  domain.NewAuthorSnapshot(author),
		Thread:  domain.NewThreadSnapshot(thread),
	})
	require.NoError(t, err)
	return post
}

func randomId() primitive.ObjectID {
	return primitive.NewObjectID()
}
