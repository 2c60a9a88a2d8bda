package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

// BlogPostRepository is an in-memory BlogPostRepository for tests.
type BlogPostRepository struct {
	posts  map[int]*models.BlogPost
	nextID int
	mutex  sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewBlogPostRepository() *BlogPostRepository {
	return &BlogPostRepository{
		posts:  make(map[int]*models.BlogPost),
		nextID: 1,
	}
}

func (m *BlogPostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.BlogPost)
	m.nextID = 1
}

func (m *BlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *BlogPostRepository) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *BlogPostRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	return m.filter(func(*models.BlogPost) bool { return true })
}

func (m *BlogPostRepository) Search(ctx context.Context, query string) ([]*models.BlogPost, error) {
	q := strings.ToLower(query)
	return m.filter(func(p *models.BlogPost) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	})
}

func (m *BlogPostRepository) filter(keep func(*models.BlogPost) bool) ([]*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	posts := []*models.BlogPost{}
	for _, post := range m.posts {
		if keep(post) {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *BlogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *BlogPostRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}

	n := int64(len(m.posts))
	m.posts = make(map[int]*models.BlogPost)
	return n, nil
}

var _ repositories.BlogPostRepository = (*BlogPostRepository)(nil)
