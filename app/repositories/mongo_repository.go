package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"portfolio/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	blogCollection    = "blogposts"
	counterCollection = "counters"
)

// MongoBlogPostRepository implements BlogPostRepository on a MongoDB
// collection. Integer IDs come from a counter document so the API looks
// the same whichever store is configured.
type MongoBlogPostRepository struct {
	posts    *mongo.Collection
	counters *mongo.Collection
}

// ConnectMongo connects to uri and verifies the connection with a ping.
// The caller owns the returned client and must Disconnect it.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("empty mongo uri")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// NewMongoBlogPostRepository uses the blogposts collection in db.
func NewMongoBlogPostRepository(db *mongo.Database) *MongoBlogPostRepository {
	return &MongoBlogPostRepository{
		posts:    db.Collection(blogCollection),
		counters: db.Collection(counterCollection),
	}
}

func (r *MongoBlogPostRepository) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": BlogPostSeqKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts a new post and assigns its ID
func (r *MongoBlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	post.ID = id
	_, err = r.posts.InsertOne(ctx, post)
	return err
}

// GetByID retrieves a post by ID
func (r *MongoBlogPostRepository) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.posts.FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns every post in ID order
func (r *MongoBlogPostRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	return r.find(ctx, bson.M{})
}

// Search matches query case-insensitively against title, description and
// category. The query is matched literally.
func (r *MongoBlogPostRepository) Search(ctx context.Context, query string) ([]*models.BlogPost, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	return r.find(ctx, bson.M{
		"$or": []bson.M{
			{"title": pattern},
			{"description": pattern},
			{"category": pattern},
		},
	})
}

func (r *MongoBlogPostRepository) find(ctx context.Context, filter bson.M) ([]*models.BlogPost, error) {
	cursor, err := r.posts.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites the stored fields of an existing post
func (r *MongoBlogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	res, err := r.posts.ReplaceOne(ctx, bson.M{"id": post.ID}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every post
func (r *MongoBlogPostRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.posts.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
