package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

// ErrQueryRequired is returned by Search for a blank query.
var ErrQueryRequired = errors.New("q query param required")

// BlogService handles business logic for blog posts
type BlogService struct {
	repo repositories.BlogPostRepository
	now  func() time.Time
}

// NewBlogService creates a new BlogService
func NewBlogService(repo repositories.BlogPostRepository) *BlogService {
	return &BlogService{
		repo: repo,
		now:  time.Now,
	}
}

// SetClock overrides the time source used for last_updated stamps
func (s *BlogService) SetClock(now func() time.Time) {
	s.now = now
}

// AddPost validates and stores a new post
func (s *BlogService) AddPost(ctx context.Context, post *models.BlogPost) error {
	if err := post.Validate(); err != nil {
		return err
	}
	post.ID = 0
	if err := s.repo.Create(ctx, post); err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

// ListPosts returns every post
func (s *BlogService) ListPosts(ctx context.Context) ([]*models.BlogPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching blog posts: %w", err)
	}
	return posts, nil
}

// ListSummaries returns every post projected to its summary
func (s *BlogService) ListSummaries(ctx context.Context) ([]models.PostSummary, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}

// GetPost retrieves a post by ID
func (s *BlogService) GetPost(ctx context.Context, id int) (*models.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

// Search finds posts matching q
func (s *BlogService) Search(ctx context.Context, q string) ([]*models.BlogPost, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrQueryRequired
	}
	posts, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return posts, nil
}

// EditPost applies the whitelisted fields in updates to post id. It returns
// the number of posts modified: 1, or 0 when every value already matched.
func (s *BlogService) EditPost(ctx context.Context, id int, updates map[string]any) (int, error) {
	if len(updates) == 0 {
		return 0, models.ErrNoUpdates
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	before := *post
	if _, err := post.Apply(updates, s.now()); err != nil {
		return 0, err
	}
	if *post == before {
		return 0, nil
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return 0, err
	}
	return 1, nil
}

// DeleteAll removes every post
func (s *BlogService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete blogposts: %w", err)
	}
	return n, nil
}
