package service

import (
	"context"
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"
	"devlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPostService(t *testing.T) (*PostService, *gorm.DB) {
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
	), db
}

func TestCreatePost(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	user := createTestUser(t, db, "Author", "author@example.com")
	user.Avatar = "https://example.com/a.png"
	require.NoError(t, db.Save(user).Error)

	t.Run("snapshots author name and avatar", func(t *testing.T) {
		post, err := svc.Create(ctx, user.ID, "hello world")
		require.NoError(t, err)
		assert.Equal(t, "Author", post.Name)
		assert.Equal(t, "https://example.com/a.png", post.Avatar)
		assert.Equal(t, "hello world", post.Text)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "   ")
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Equal(t, "Text is required!", appErr.Messages[0])
	})
}

func TestListPosts_NewestFirst(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	user := createTestUser(t, db, "Author", "author@example.com")

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, user.ID, text)
		require.NoError(t, err)
	}

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "first", posts[2].Text)
}

func TestGetPost_NotFound(t *testing.T) {
	svc, _ := setupPostService(t)

	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.Equal(t, "Post not found", appErr.Messages[0])
}

func TestDeletePost(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "Author", "author@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	post, err := svc.Create(ctx, author.ID, "to be deleted")
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, other.ID, post.ID, "nice post")
	require.NoError(t, err)
	_, err = svc.Like(ctx, other.ID, post.ID)
	require.NoError(t, err)

	t.Run("non-owner is rejected", func(t *testing.T) {
		err := svc.Delete(ctx, other.ID, post.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
		assert.Equal(t, "User not authorized!", appErr.Messages[0])
	})

	t.Run("owner delete cascades to comments and likes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, author.ID, post.ID))

		_, err := svc.Get(ctx, post.ID)
		assert.Error(t, err)

		var comments, likes int64
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
		require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
		assert.Zero(t, comments)
		assert.Zero(t, likes)
	})
}

func TestLikeUnlike(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "Author", "author@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post, err := svc.Create(ctx, author.ID, "likeable")
	require.NoError(t, err)

	likes, err := svc.Like(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, fan.ID, likes[0].UserID)

	t.Run("double like is rejected", func(t *testing.T) {
		_, err := svc.Like(ctx, fan.ID, post.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Post already liked", appErr.Messages[0])
	})

	t.Run("unlike removes only the caller's like", func(t *testing.T) {
		_, err := svc.Like(ctx, author.ID, post.ID)
		require.NoError(t, err)

		likes, err := svc.Unlike(ctx, fan.ID, post.ID)
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, author.ID, likes[0].UserID)
	})

	t.Run("unlike without a like is rejected", func(t *testing.T) {
		_, err := svc.Unlike(ctx, fan.ID, post.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Post has not yet been liked", appErr.Messages[0])
	})

	t.Run("like on a missing post", func(t *testing.T) {
		_, err := svc.Like(ctx, fan.ID, 999)
		require.Error(t, err)
	})
}

func TestComments(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "Author", "author@example.com")
	commenter := createTestUser(t, db, "Commenter", "commenter@example.com")

	post, err := svc.Create(ctx, author.ID, "discuss")
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, commenter.ID, post.ID, "first!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Commenter", comments[0].Name)

	t.Run("comments come back newest-first", func(t *testing.T) {
		comments, err := svc.AddComment(ctx, author.ID, post.ID, "thanks")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "thanks", comments[0].Text)
		assert.Equal(t, "first!", comments[1].Text)
	})

	t.Run("author snapshot survives a name change", func(t *testing.T) {
		commenter.Name = "Renamed"
		require.NoError(t, db.Save(commenter).Error)

		got, err := svc.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Commenter", got.Comments[1].Name)
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		_, err := svc.AddComment(ctx, commenter.ID, post.ID, "")
		require.Error(t, err)
	})

	t.Run("only the comment owner may delete it", func(t *testing.T) {
		got, err := svc.Get(ctx, post.ID)
		require.NoError(t, err)
		target := got.Comments[1] // commenter's comment

		_, err = svc.RemoveComment(ctx, author.ID, post.ID, target.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)

		remaining, err := svc.RemoveComment(ctx, commenter.ID, post.ID, target.ID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "thanks", remaining[0].Text)
	})

	t.Run("deleting an unknown comment", func(t *testing.T) {
		_, err := svc.RemoveComment(ctx, commenter.ID, post.ID, 999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Comment does not exist", appErr.Messages[0])
	})
}
