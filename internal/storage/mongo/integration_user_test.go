package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlor-dev/parlor/internal/domain"
)

func TestSaveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("save and fetch by id, email and username", func(t *testing.T) {
		user := mustUser(t, ctx)

		got, err := storage.User(ctx, user.Id)
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
		assert.Empty(t, got.Threads)
		assert.Empty(t, got.Posts)
		assert.False(t, got.JoinedAt.IsZero())

		byEmail, err := storage.UserByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.Id, byEmail.Id)

		byName, err := storage.UserByUsername(ctx, user.Username)
		require.NoError(t, err)
		assert.Equal(t, user.Id, byName.Id)
	})

	t.Run("duplicate username should conflict", func(t *testing.T) {
		user := mustUser(t, ctx)

		_, err := storage.SaveUser(ctx, domain.User{
			Username: user.Username,
			Email:    generateString(t) + "@example.com",
			PassHash: "hash",
		})
		requireConflictError(t, err)
	})

	t.Run("duplicate email should conflict", func(t *testing.T) {
		user := mustUser(t, ctx)

		_, err := storage.SaveUser(ctx, domain.User{
			Username: generateString(t),
			Email:    user.Email,
			PassHash: "hash",
		})
		requireConflictError(t, err)
	})

	t.Run("non-existent user should 404", func(t *testing.T) {
		_, err := storage.User(ctx, randomId())
		requireNotFoundError(t, err)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("delete user without content", func(t *testing.T) {
		user := mustUser(t, ctx)

		require.NoError(t, storage.DeleteUser(ctx, user.Id))

		_, err := storage.User(ctx, user.Id)
		requireNotFoundError(t, err)
	})

	t.Run("rejected while the user still owns content", func(t *testing.T) {
		category := mustCategory(t, ctx)
		board := mustBoard(t, ctx, category)
		user := mustUser(t, ctx)
		thread := mustThread(t, ctx, user, board)

		requireConflictError(t, storage.DeleteUser(ctx, user.Id))

		// Once the content is gone the user becomes deletable.
		require.NoError(t, storage.DeleteThread(ctx, thread))
		require.NoError(t, storage.DeleteUser(ctx, user.Id))
	})

	t.Run("missing user should 404", func(t *testing.T) {
		requireNotFoundError(t, storage.DeleteUser(ctx, randomId()))
	})
}
