package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/model"
	"chroniclex/internal/repository"
	"chroniclex/internal/storage"
)

const (
	maxTitleLength   = 200
	minContentLength = 10
	maxTagLength     = 30

	defaultPageSize = 10
	maxPageSize     = 100
)

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	Title      string
	Content    string
	CoverImage string // inline data URL, optional
	Tags       []string
}

// PostPatch is an explicit partial update: nil leaves the stored value,
// non-nil overwrites it. The slug is never part of a patch.
type PostPatch struct {
	Title      *string
	Content    *string
	CoverImage *string
	Tags       *[]string
}

// Pagination is the metadata returned alongside every post page.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// PostPage bundles one page of posts with its pagination metadata.
type PostPage struct {
	Posts      []model.Post `json:"posts"`
	Pagination Pagination   `json:"pagination"`
}

// PostService exposes the post lifecycle.
type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*model.Post, error)
	List(ctx context.Context, page, limit int, tag string, authorID *uuid.UUID) (*PostPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, id, callerID uuid.UUID, patch PostPatch) (*model.Post, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
	ToggleLike(ctx context.Context, id, userID uuid.UUID) (*model.Post, bool, error)
}

type postService struct {
	postRepo repository.PostRepository
	media    storage.MediaStore
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, media storage.MediaStore) PostService {
	return &postService{postRepo: postRepo, media: media}
}

// Create validates and stores a new post, deriving slug and reading time.
func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateContent(input.Content); err != nil {
		return nil, err
	}
	tags, err := normalizeTags(input.Tags)
	if err != nil {
		return nil, err
	}

	coverURL := ""
	if input.CoverImage != "" {
		coverURL, err = s.media.UploadDataURL(ctx, input.CoverImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstream, err)
		}
	}

	now := time.Now()
	post := &model.Post{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       title,
		Content:     sanitizeContent(input.Content),
		CoverImage:  coverURL,
		Tags:        tags,
		IsPublished: true,
		Slug:        GenerateSlug(title, now),
		ReadingTime: EstimateReadingTime(input.Content),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.loadDecorated(ctx, post.ID, false)
}

// List returns one page of posts newest-first, optionally filtered by tag
// and author. The limit is clamped to keep a single request bounded.
func (s *postService) List(ctx context.Context, page, limit int, tag string, authorID *uuid.UUID) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.PostFilter{Tag: tag, AuthorID: authorID}
	posts, total, err := s.postRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	for i := range posts {
		s.decorate(ctx, &posts[i], false)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PostPage{
		Posts: posts,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	}, nil
}

// GetByID returns a single post and counts the read. The increment is a
// single atomic statement; the response reflects the bumped value.
func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	post.Views++

	s.decorate(ctx, post, true)
	return post, nil
}

// Update applies an explicit patch, owner only. Reading time follows content
// changes; the slug never does.
func (s *postService) Update(ctx context.Context, id, callerID uuid.UUID, patch PostPatch) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, apperrors.ErrNotOwner
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		post.Title = title
	}
	if patch.Content != nil {
		if err := validateContent(*patch.Content); err != nil {
			return nil, err
		}
		post.Content = sanitizeContent(*patch.Content)
		post.ReadingTime = EstimateReadingTime(*patch.Content)
	}
	if patch.Tags != nil {
		tags, err := normalizeTags(*patch.Tags)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}
	if patch.CoverImage != nil && *patch.CoverImage != "" {
		url, err := s.media.UploadDataURL(ctx, *patch.CoverImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstream, err)
		}
		post.CoverImage = url
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return s.loadDecorated(ctx, post.ID, false)
}

// Delete removes a post and its dependents, owner only.
func (s *postService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return apperrors.ErrNotOwner
	}

	if err := s.postRepo.DeleteWithDependents(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ToggleLike flips the caller's membership in the post's like set and
// reports whether the post ended up liked. Membership lives in its own
// keyed table, so a racing duplicate like is a key violation rather than a
// double entry.
func (s *postService) ToggleLike(ctx context.Context, id, userID uuid.UUID) (*model.Post, bool, error) {
	if _, err := s.findPost(ctx, id); err != nil {
		return nil, false, err
	}

	liked, err := s.postRepo.HasLike(ctx, id, userID)
	if err != nil {
		return nil, false, fmt.Errorf("check like: %w", err)
	}

	if liked {
		if err := s.postRepo.RemoveLike(ctx, id, userID); err != nil {
			return nil, false, fmt.Errorf("remove like: %w", err)
		}
	} else {
		err := s.postRepo.AddLike(ctx, id, userID)
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, fmt.Errorf("add like: %w", err)
		}
	}

	post, err := s.loadDecorated(ctx, id, false)
	if err != nil {
		return nil, false, err
	}
	return post, !liked, nil
}

func (s *postService) findPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *postService) loadDecorated(ctx context.Context, id uuid.UUID, withHTML bool) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, post, withHTML)
	return post, nil
}

// decorate fills the derived response-only fields. Like lookups failing is
// not fatal to a read; the post ships with an empty like set.
func (s *postService) decorate(ctx context.Context, post *model.Post, withHTML bool) {
	likes, err := s.postRepo.ListLikeUserIDs(ctx, post.ID)
	if err == nil {
		post.Likes = likes
	} else {
		post.Likes = []uuid.UUID{}
	}
	post.LikesCount = len(post.Likes)
	post.Excerpt = Excerpt(post.Content)
	if withHTML {
		post.ContentHTML = renderMarkdown(post.Content)
	}
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.Validation("title and content are required")
	}
	if len([]rune(title)) > maxTitleLength {
		return apperrors.Validation(fmt.Sprintf("title cannot be more than %d characters", maxTitleLength))
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.Validation("title and content are required")
	}
	if len([]rune(content)) < minContentLength {
		return apperrors.Validation(fmt.Sprintf("content must be at least %d characters long", minContentLength))
	}
	return nil
}

func normalizeTags(tags []string) ([]string, error) {
	if tags == nil {
		return []string{}, nil
	}
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len([]rune(tag)) > maxTagLength {
			return nil, apperrors.Validation(fmt.Sprintf("tag cannot be more than %d characters", maxTagLength))
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	return cleaned, nil
}
