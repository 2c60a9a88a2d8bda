package repositories

import (
	"context"
	"testing"

	"portfolio/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(title, category, description string) *models.BlogPost {
	return &models.BlogPost{
		Title:         title,
		Thumbnail:     "/img/t.png",
		Category:      category,
		DatePublished: "October 28 2025",
		LastUpdated:   "October 28 2025",
		Description:   description,
		Markdown:      "# " + title,
	}
}

func setupRepo(t *testing.T) *BadgerBlogPostRepository {
	t.Helper()
	db, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBadgerBlogPostRepository(db)
}

func TestBadgerBlogPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	t.Run("create and get post", func(t *testing.T) {
		post := newTestPost("Test Post", "education", "first")
		require.NoError(t, repo.Create(ctx, post))
		assert.Equal(t, 1, post.ID)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post, got)
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post", func(t *testing.T) {
		post := newTestPost("Original Title", "education", "second")
		require.NoError(t, repo.Create(ctx, post))

		post.Title = "Updated Title"
		require.NoError(t, repo.Update(ctx, post))

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", got.Title)
	})

	t.Run("update missing post", func(t *testing.T) {
		post := newTestPost("Ghost", "none", "none")
		post.ID = 12345
		assert.ErrorIs(t, repo.Update(ctx, post), ErrNotFound)
	})

	t.Run("list posts in id order", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			require.NoError(t, repo.Create(ctx, newTestPost("List Post", "list", "bulk")))
		}
		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 12)
		for i := 1; i < len(posts); i++ {
			assert.Less(t, posts[i-1].ID, posts[i].ID)
		}
	})

	t.Run("search", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestPost("Using Markdown in Blog", "Development", "tables")))

		posts, err := repo.Search(ctx, "markdown")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Using Markdown in Blog", posts[0].Title)

		posts, err = repo.Search(ctx, "EDUCATION")
		require.NoError(t, err)
		assert.Len(t, posts, 2)

		posts, err = repo.Search(ctx, "nothing matches this")
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("delete all", func(t *testing.T) {
		n, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(13), n)

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)

		n, err = repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		// IDs keep counting after a wipe.
		post := newTestPost("After Wipe", "x", "y")
		require.NoError(t, repo.Create(ctx, post))
		assert.Equal(t, 14, post.ID)
	})
}

func TestBadgerBlogPostRepositoryCancelledContext(t *testing.T) {
	repo := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, newTestPost("x", "y", "z")), context.Canceled)
	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.DeleteAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBadgerDeleteAllAcrossBatches(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	for i := 0; i < deleteBatchSize+5; i++ {
		require.NoError(t, repo.Create(ctx, newTestPost("bulk", "bulk", "bulk")))
	}
	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(deleteBatchSize+5), n)
}

var (
	_ BlogPostRepository = (*BadgerBlogPostRepository)(nil)
	_ BlogPostRepository = (*MongoBlogPostRepository)(nil)
)
