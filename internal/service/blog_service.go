package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"dananglover/internal/models"
	"dananglover/internal/repository"

	"gorm.io/gorm"
)

const DefaultExcerptLength = 200

// Markdown stripping order matters: fenced blocks go first so their
// backticks never match the inline code pattern.
var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*`)
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	quoteRe      = regexp.MustCompile(`(?m)^\s*>\s?`)
	listRe       = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// GenerateExcerpt strips markdown syntax from content and truncates the
// plain text to maxLength runes, appending an ellipsis when cut.
func GenerateExcerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	text := fencedCodeRe.ReplaceAllString(content, "")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = quoteRe.ReplaceAllString(text, "")
	text = listRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

type BlogService struct {
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
	media       MediaUploader
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Excerpt  string
	CoverURL string
	Images   []string
	Publish  bool
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	Excerpt  string
	CoverURL string
	Images   []string
	Publish  bool
}

type ListPostsInput struct {
	Page  int
	Limit int
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewBlogService(
	blogRepo repository.BlogRepository,
	commentRepo repository.CommentRepository,
	media MediaUploader,
) *BlogService {
	return &BlogService{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		media:       media,
	}
}

func (s *BlogService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.BlogPost, models.Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	posts, total, err := s.blogRepo.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return posts, models.NewPagination(page, limit, total), nil
}

func (s *BlogService) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

func (s *BlogService) CreatePost(ctx context.Context, in CreatePostInput) (*models.BlogPost, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = GenerateExcerpt(in.Content, DefaultExcerptLength)
	}

	post := &models.BlogPost{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Excerpt:  excerpt,
		CoverURL: in.CoverURL,
		Images:   in.Images,
		UserID:   in.UserID,
	}
	if in.Publish {
		now := time.Now()
		post.Published = true
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, post.ID)
}

func (s *BlogService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.BlogPost, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	existing, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != in.UserID {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = GenerateExcerpt(in.Content, DefaultExcerptLength)
	}

	post := &models.BlogPost{
		ID:       in.PostID,
		UserID:   in.UserID,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Excerpt:  excerpt,
		CoverURL: in.CoverURL,
		Images:   in.Images,
	}

	// The visibility flag follows the request, but publishedAt is set on the
	// first publish only and survives later unpublishing.
	post.Published = in.Publish
	post.PublishedAt = existing.PublishedAt
	if in.Publish && existing.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}
	return s.GetPost(ctx, in.PostID)
}

func (s *BlogService) DeletePost(ctx context.Context, postID, userID uint) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := s.blogRepo.Delete(ctx, postID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return err
	}
	return nil
}

func (s *BlogService) ListMyPosts(ctx context.Context, userID uint) ([]*models.BlogPost, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.blogRepo.ListByUser(ctx, userID)
}

// UploadImage stores one image for use inside a post body or as a cover.
func (s *BlogService) UploadImage(ctx context.Context, userID uint, filename, contentType string, content []byte) (*StoredFile, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.media.Upload(ctx, UploadMediaInput{
		Bucket:      BucketBlogImages,
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	})
}

// ListComments returns the post's comments. Drafts keep their comments as
// private as the draft itself, so only the author sees them.
func (s *BlogService) ListComments(ctx context.Context, postID uint, viewerID uint) ([]*models.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.UserID != viewerID {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *BlogService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	// Drafts only take comments from their author.
	if !post.Published && post.UserID != in.UserID {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

func (s *BlogService) DeleteComment(ctx context.Context, commentID, postID, userID uint) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := s.commentRepo.Delete(ctx, commentID, postID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return err
	}
	return nil
}
