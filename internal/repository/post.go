package repository

import (
	"context"
	"errors"

	"devlink/internal/models"
	"devlink/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts, likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, postID, userID uint) error
	Unlike(ctx context.Context, postID, userID uint) error
	AddComment(ctx context.Context, comment *models.Comment) error
	RemoveComment(ctx context.Context, postID, commentID uint) error
	GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withDetails preloads likes and comments, comments newest first.
func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id DESC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.ObserveQuery("insert", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError("Posts", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.ObserveQuery("select", "posts")()

	var post models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError("Posts", err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	defer observability.ObserveQuery("select", "posts")()

	var posts []models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError("Posts", err)
	}
	return posts, nil
}

// Delete removes a post together with its comments and likes in one
// transaction, so comments never outlive their post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError("Posts", err)
	}
	return nil
}

func (r *postRepository) Like(ctx context.Context, postID, userID uint) error {
	like := models.Like{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Post already liked")
		}
		return models.NewInternalError("Posts", err)
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError("Posts", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Post has not yet been liked")
	}
	return nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	defer observability.ObserveQuery("insert", "comments")()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError("Comments", err)
	}
	return nil
}

// GetComment returns a comment scoped to its post.
func (r *postRepository) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment does not exist")
		}
		return nil, models.NewInternalError("Comments", err)
	}
	return &comment, nil
}

func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return models.NewInternalError("Comments", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment does not exist")
	}
	return nil
}
