package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chroniclex/internal/model"
)

// PostFilter narrows post listings. Zero values mean no filtering.
type PostFilter struct {
	Tag      string
	AuthorID *uuid.UUID
}

// PostRepository defines post persistence operations. Counter and like-set
// mutations are atomic statements, never read-modify-write in Go.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.Post, int64, error)
	// DeleteWithDependents removes the post together with its comments and
	// likes in a single transaction.
	DeleteWithDependents(ctx context.Context, id uuid.UUID) error

	IncrementViews(ctx context.Context, id uuid.UUID) error
	HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	ListLikeUserIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves all fields of an existing post.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// FindByID finds a post by ID with its author attached.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.Tag != "" {
		q = q.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", filter.Tag)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	return q
}

// List returns one page of posts newest-first plus the total match count.
func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := r.filtered(ctx, filter).
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// DeleteWithDependents removes the post, its comments and its likes.
func (r *postRepository) DeleteWithDependents(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

// IncrementViews bumps the view counter atomically so concurrent reads
// cannot lose updates.
func (r *postRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// HasLike reports whether the user currently likes the post.
func (r *postRepository) HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddLike inserts a like row. The composite primary key rejects duplicates,
// so a concurrent double-like surfaces as gorm.ErrDuplicatedKey instead of a
// second membership.
func (r *postRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	like := model.PostLike{PostID: postID, UserID: userID}
	return r.db.WithContext(ctx).Create(&like).Error
}

// RemoveLike deletes the like row if present.
func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{}).Error
}

// ListLikeUserIDs returns the ids of users who like the post.
func (r *postRepository) ListLikeUserIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
