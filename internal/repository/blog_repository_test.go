package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/testdb"
)

func TestBlogRepository_CreateSetsCreatedAtOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(testdb.Open(t, &model.Blog{}))

	blog := &model.Blog{Title: "Hello world", Content: "first post body", Author: "bob"}
	require.NoError(t, repo.Create(ctx, blog))

	got, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.UpdatedAt)
}

func TestBlogRepository_UpdateNeverRewritesCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(testdb.Open(t, &model.Blog{}))

	blog := &model.Blog{Title: "Hello world", Content: "first post body", Author: "bob"}
	require.NoError(t, repo.Create(ctx, blog))
	created, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)

	now := time.Now()
	blog.Title = "Hello again"
	blog.CreatedAt = now.Add(48 * time.Hour)
	blog.UpdatedAt = &now
	ok, err := repo.Update(ctx, blog)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", got.Title)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	require.NotNil(t, got.UpdatedAt)
}

func TestBlogRepository_UpdateAfterDeleteDoesNotRecreate(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(testdb.Open(t, &model.Blog{}))

	blog := &model.Blog{Title: "Hello world", Content: "first post body", Author: "bob"}
	require.NoError(t, repo.Create(ctx, blog))
	loaded, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, blog.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	now := time.Now()
	loaded.Title = "Edited"
	loaded.UpdatedAt = &now
	ok, err := repo.Update(ctx, loaded)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBlogRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(testdb.Open(t, &model.Blog{}))

	ok, err := repo.DeleteByID(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	blog := &model.Blog{Title: "Hello world", Content: "first post body", Author: "bob"}
	require.NoError(t, repo.Create(ctx, blog))

	ok, err = repo.DeleteByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBlogRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(testdb.Open(t, &model.Blog{}))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		blog := &model.Blog{
			Title:     title,
			Content:   "some content here",
			Author:    "bob",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, blog))
	}

	blogs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, blogs, 3)
	assert.Equal(t, "newest", blogs[0].Title)
	assert.Equal(t, "oldest", blogs[2].Title)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepositories_AreBoundToTheirOwnDatabase(t *testing.T) {
	ctx := context.Background()
	userDB := testdb.Open(t, &model.User{})
	blogDB := testdb.Open(t, &model.Blog{})

	require.NoError(t, NewUserRepository(userDB).Create(ctx, &model.User{Name: "a", Email: "a@b.co", Password: "x"}))
	require.NoError(t, NewBlogRepository(blogDB).Create(ctx, &model.Blog{Title: "title", Content: "0123456789", Author: "a"}))

	assert.False(t, userDB.Migrator().HasTable(&model.Blog{}))
	assert.False(t, blogDB.Migrator().HasTable(&model.User{}))
}
