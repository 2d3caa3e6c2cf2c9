package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/model"
	"chroniclex/internal/repository"
)

// CommentService exposes the comment lifecycle, always scoped to a post.
type CommentService interface {
	Add(ctx context.Context, postID, authorID uuid.UUID, text string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	Update(ctx context.Context, id, callerID uuid.UUID, text string) (*model.Comment, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Add attaches a comment to an existing post. The author is always the
// authenticated caller.
func (s *commentService) Add(ctx context.Context, postID, authorID uuid.UUID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("comment text is required")
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	comment := &model.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     sanitizeText(text),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return s.findComment(ctx, comment.ID)
}

// ListByPost returns all comments for a post, newest-first.
func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// Update replaces the comment text, owner only. Empty text is rejected the
// same way it is on create.
func (s *commentService) Update(ctx context.Context, id, callerID uuid.UUID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("comment text is required")
	}

	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, apperrors.ErrNotOwner
	}

	comment.Text = sanitizeText(text)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment, owner only.
func (s *commentService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return apperrors.ErrNotOwner
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *commentService) findComment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}
