package domain

import "time"

// ActivityKind labels an entry in the activity trail.
type ActivityKind string

const (
	ActivityPostCreated    ActivityKind = "post_created"
	ActivityPostLiked      ActivityKind = "post_liked"
	ActivityPostUnliked    ActivityKind = "post_unliked"
	ActivityCommentAdded   ActivityKind = "comment_added"
	ActivityCommentRemoved ActivityKind = "comment_removed"
)

// Activity records one mutation of a post for the audit trail. Entries
// for the same post are persisted in the order the mutations happened.
type Activity struct {
	Kind      ActivityKind `bson:"kind"`
	PostID    string       `bson:"post_id"`
	ActorID   string       `bson:"actor_id"`
	SubItemID string       `bson:"sub_item_id,omitempty"`
	At        time.Time    `bson:"at"`
}
