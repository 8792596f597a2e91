package domain

import "time"

// Like records that one actor liked a post. An actor appears at most once
// in a post's likes; the record has no identity beyond that presence.
type Like struct {
	ActorID string    `json:"actor_id" bson:"actor_id"`
	LikedAt time.Time `json:"liked_at" bson:"liked_at"`
}

// Comment is an authored entry embedded in a post. AuthorID is distinct
// from the post owner; name and avatar are snapshots taken at creation.
type Comment struct {
	ID         string    `json:"id" bson:"id"`
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	AvatarURL  string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func (c Comment) Key() string { return c.ID }

// Post is the aggregate for shared content. OwnerID is assigned at
// creation and never reassigned.
type Post struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	OwnerID    string    `json:"owner_id" bson:"owner_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	AvatarURL  string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Text       string    `json:"text" bson:"text"`
	Likes      []Like    `json:"likes" bson:"likes"`
	Comments   []Comment `json:"comments" bson:"comments"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Version    int64     `json:"-" bson:"version"`
}

// CommentByID returns the comment with the given id, or nil when absent.
func (p *Post) CommentByID(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}
