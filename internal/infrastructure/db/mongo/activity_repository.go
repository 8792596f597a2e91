package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devlink/devlink-api/internal/core/domain"
)

const activitiesCollection = "activities"

// ActivityRepository appends entries to the activity trail. Writes come
// from the dispatcher workers, one worker per post shard, so entries for
// a given post land in mutation order.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	if _, err := r.coll.InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
