package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlink/devlink-api/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type postDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID    string             `bson:"owner_id"`
	AuthorName string             `bson:"author_name"`
	AvatarURL  string             `bson:"avatar_url,omitempty"`
	Text       string             `bson:"text"`
	Likes      []domain.Like      `bson:"likes"`
	Comments   []domain.Comment   `bson:"comments"`
	CreatedAt  time.Time          `bson:"created_at"`
	Version    int64              `bson:"version"`
}

func (d postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:         d.ID.Hex(),
		OwnerID:    d.OwnerID,
		AuthorName: d.AuthorName,
		AvatarURL:  d.AvatarURL,
		Text:       d.Text,
		Likes:      d.Likes,
		Comments:   d.Comments,
		CreatedAt:  d.CreatedAt.UTC(),
		Version:    d.Version,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := postDoc{
		OwnerID:    post.OwnerID,
		AuthorName: post.AuthorName,
		AvatarURL:  post.AvatarURL,
		Text:       post.Text,
		Likes:      post.Likes,
		Comments:   post.Comments,
		CreatedAt:  post.CreatedAt,
		Version:    0,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// Replace persists mutated like/comment collections with a
// compare-and-swap on the version captured at load time. A lost race is
// reported as domain.ErrVersionConflict, never silently overwritten.
func (r *PostRepository) Replace(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"likes":    post.Likes,
			"comments": post.Comments,
		},
		"$inc": bson.M{"version": int64(1)},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "version": post.Version}, update)
	if err != nil {
		return nil, fmt.Errorf("replace post: %w", err)
	}
	if res.MatchedCount == 0 {
		if n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}); err == nil && n == 0 {
			return nil, domain.ErrPostNotFound
		}
		return nil, domain.ErrVersionConflict
	}

	out := *post
	out.Version++
	return &out, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

// FindAll returns every post, newest first.
func (r *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, *d.toDomain())
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner and recency indexes used by the feed
// and account deletion.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
