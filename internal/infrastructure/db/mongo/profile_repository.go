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

const profilesCollection = "profiles"

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

type profileDoc struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	OwnerID        string              `bson:"owner_id"`
	Status         string              `bson:"status"`
	Skills         []string            `bson:"skills"`
	Company        string              `bson:"company,omitempty"`
	Website        string              `bson:"website,omitempty"`
	Location       string              `bson:"location,omitempty"`
	Bio            string              `bson:"bio,omitempty"`
	GithubUsername string              `bson:"github_username,omitempty"`
	Social         domain.SocialLinks  `bson:"social"`
	Experience     []domain.Experience `bson:"experience"`
	Education      []domain.Education  `bson:"education"`
	CreatedAt      time.Time           `bson:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at"`
	Version        int64               `bson:"version"`
}

func (d profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:             d.ID.Hex(),
		OwnerID:        d.OwnerID,
		Status:         d.Status,
		Skills:         d.Skills,
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Bio:            d.Bio,
		GithubUsername: d.GithubUsername,
		Social:         d.Social,
		Experience:     d.Experience,
		Education:      d.Education,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
		Version:        d.Version,
	}
}

// Upsert creates the profile for profile.OwnerID or overwrites its scalar
// fields, leaving the embedded collections and version untouched.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	update := bson.M{
		"$set": bson.M{
			"status":          profile.Status,
			"skills":          profile.Skills,
			"company":         profile.Company,
			"website":         profile.Website,
			"location":        profile.Location,
			"bio":             profile.Bio,
			"github_username": profile.GithubUsername,
			"social":          profile.Social,
			"updated_at":      profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"owner_id":   profile.OwnerID,
			"experience": []domain.Experience{},
			"education":  []domain.Education{},
			"created_at": profile.CreatedAt,
			"version":    int64(0),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc profileDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"owner_id": profile.OwnerID}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return doc.toDomain(), nil
}

// Replace persists a mutated profile with a compare-and-swap on the
// version captured at load time. When the stored version has moved the
// write is rejected with domain.ErrVersionConflict so a concurrent
// collection mutation is never silently overwritten.
func (r *ProfileRepository) Replace(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(profile.ID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"experience": profile.Experience,
			"education":  profile.Education,
			"updated_at": profile.UpdatedAt,
		},
		"$inc": bson.M{"version": int64(1)},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "version": profile.Version}, update)
	if err != nil {
		return nil, fmt.Errorf("replace profile: %w", err)
	}
	if res.MatchedCount == 0 {
		if n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}); err == nil && n == 0 {
			return nil, domain.ErrProfileNotFound
		}
		return nil, domain.ErrVersionConflict
	}

	out := *profile
	out.Version++
	return &out, nil
}

func (r *ProfileRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]domain.Profile, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(docs))
	for _, d := range docs {
		profiles = append(profiles, *d.toDomain())
	}
	return profiles, nil
}

// DeleteByOwner removes the owner's profile. Deleting an absent profile
// is not an error.
func (r *ProfileRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique owner index: one profile per user.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
