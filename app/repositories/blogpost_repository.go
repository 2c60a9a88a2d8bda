package repositories

import (
	"context"
	"fmt"

	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// deleteBatchSize keeps each delete transaction well under badger's size limit.
const deleteBatchSize = 1000

// BadgerBlogPostRepository implements BlogPostRepository using BadgerDB
type BadgerBlogPostRepository struct {
	db *badger.DB
}

// NewBadgerBlogPostRepository creates a new BadgerBlogPostRepository
func NewBadgerBlogPostRepository(db *badger.DB) *BadgerBlogPostRepository {
	return &BadgerBlogPostRepository{db: db}
}

// Open opens (or creates) a badger database at path. An empty path opens
// an in-memory database.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// Create stores a new post and assigns its ID
func (r *BadgerBlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, BlogPostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(blogPostKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerBlogPostRepository) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var post models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blogPostKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns every post in ID order
func (r *BadgerBlogPostRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	return r.scan(ctx, func(*models.BlogPost) bool { return true })
}

// Search returns posts whose title, description or category contain query
func (r *BadgerBlogPostRepository) Search(ctx context.Context, query string) ([]*models.BlogPost, error) {
	return r.scan(ctx, func(p *models.BlogPost) bool { return matches(p, query) })
}

func (r *BadgerBlogPostRepository) scan(ctx context.Context, keep func(*models.BlogPost) bool) ([]*models.BlogPost, error) {
	posts := []*models.BlogPost{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(BlogPostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var post models.BlogPost
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			if keep(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites an existing post
func (r *BadgerBlogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := blogPostKey(post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// DeleteAll removes every post and reports how many were deleted. The ID
// sequence keeps counting.
func (r *BadgerBlogPostRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogPostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))
		err := r.db.Update(func(txn *badger.Txn) error {
			for _, k := range keys[start:end] {
				if err := txn.Delete(k); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return int64(start), err
		}
	}
	return int64(len(keys)), nil
}
