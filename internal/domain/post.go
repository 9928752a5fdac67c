package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is an entry of the social activity feed.
type Post struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	AuthorID   primitive.ObjectID   `bson:"authorId" json:"authorId"`
	AuthorName string               `bson:"authorName" json:"authorName"`
	Content    string               `bson:"content" json:"content"`
	ImageKey   string               `bson:"imageKey,omitempty" json:"-"` // object storage key, internal use
	LikedBy    []primitive.ObjectID `bson:"likedBy,omitempty" json:"-"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}

// LikeCount returns the number of distinct users who liked the post.
func (p *Post) LikeCount() int {
	return len(p.LikedBy)
}

// IsLikedBy reports whether the user liked the post.
func (p *Post) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.LikedBy = append([]primitive.ObjectID(nil), p.LikedBy...)
	return &c
}
