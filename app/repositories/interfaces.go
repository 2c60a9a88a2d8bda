package repositories

import (
	"context"

	"portfolio/app/models"
)

// BlogPostRepository defines the interface for blog post data access
type BlogPostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id int) (*models.BlogPost, error)
	List(ctx context.Context) ([]*models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) error
	DeleteAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string) ([]*models.BlogPost, error)
}
