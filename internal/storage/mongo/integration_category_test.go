package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlor-dev/parlor/internal/domain"
)

func TestSaveCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("save and fetch", func(t *testing.T) {
		category := mustCategory(t, ctx)

		got, err := storage.Category(ctx, category.Id)
		require.NoError(t, err)
		assert.Equal(t, category.Topic, got.Topic)
		assert.Empty(t, got.Boards, "new category should have no boards")
	})

	t.Run("duplicate topic should conflict", func(t *testing.T) {
		category := mustCategory(t, ctx)

		_, err := storage.SaveCategory(ctx, domain.BoardCategory{Topic: category.Topic})
		requireConflictError(t, err)
	})

	t.Run("non-existent category should 404", func(t *testing.T) {
		_, err := storage.Category(ctx, randomId())
		requireNotFoundError(t, err)
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	first, err := storage.SaveCategory(ctx, domain.BoardCategory{Topic: generateString(t), SortOrder: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.DeleteCategory(ctx, first.Id) })
	second, err := storage.SaveCategory(ctx, domain.BoardCategory{Topic: generateString(t), SortOrder: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.DeleteCategory(ctx, second.Id) })

	categories, err := storage.Categories(ctx)
	require.NoError(t, err)

	positions := map[string]int{}
	for i, c := range categories {
		positions[c.Topic] = i
	}
	require.Contains(t, positions, first.Topic)
	require.Contains(t, positions, second.Topic)
	assert.Less(t, positions[first.Topic], positions[second.Topic], "categories should come back in sortOrder")
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("rename does not touch board snapshots", func(t *testing.T) {
		category := mustCategory(t, ctx)
		board := mustBoard(t, ctx, category)

		newTopic := generateString(t)
		require.NoError(t, storage.UpdateCategory(ctx, category.Id, domain.CategoryUpdateData{Topic: newTopic, SortOrder: 7}))

		renamed, err := storage.Category(ctx, category.Id)
		require.NoError(t, err)
		assert.Equal(t, newTopic, renamed.Topic)
		assert.Equal(t, 7, renamed.SortOrder)

		// The snapshot embedded in the board keeps the name it was taken with.
		got, err := storage.Board(ctx, board.Id)
		require.NoError(t, err)
		assert.Equal(t, category.Topic, got.Category.Topic)
		assert.Equal(t, category.Id, got.Category.CategoryId)
	})

	t.Run("missing category should 404", func(t *testing.T) {
		err := storage.UpdateCategory(ctx, randomId(), domain.CategoryUpdateData{Topic: generateString(t)})
		requireNotFoundError(t, err)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("delete empty category", func(t *testing.T) {
		category, err := storage.SaveCategory(ctx, domain.BoardCategory{Topic: generateString(t)})
		require.NoError(t, err)

		require.NoError(t, storage.DeleteCategory(ctx, category.Id))

		_, err = storage.Category(ctx, category.Id)
		requireNotFoundError(t, err)
	})

	t.Run("rejected while it still contains boards", func(t *testing.T) {
		category := mustCategory(t, ctx)
		mustBoard(t, ctx, category)

		requireConflictError(t, storage.DeleteCategory(ctx, category.Id))
	})

	t.Run("missing category should 404", func(t *testing.T) {
		requireNotFoundError(t, storage.DeleteCategory(ctx, randomId()))
	})
}
