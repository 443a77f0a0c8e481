package comments

import "Blogview/internal/core/posts"

// MaxCatalogCommentID is the highest comment id served by the remote
// catalog. Local comment ids are allocated above it by a single global
// counter, so a comment id never encodes which post it belongs to.
const MaxCatalogCommentID = 340

// Comment is a unified comment from either source. LikedBy is populated
// for local comments only; remote comments are immutable snapshots whose
// like count cannot change through this system.
type Comment struct {
	ID             int64        `json:"id"`
	PostID         int64        `json:"postId"`
	Body           string       `json:"body"`
	Likes          int          `json:"likes"`
	LikedBy        []int64      `json:"-"`
	AuthorID       int64        `json:"userId"`
	AuthorFullName string       `json:"userFullName"`
	Origin         posts.Origin `json:"origin"`
}

// IsLocal reports whether the comment is locally stored and mutable
func (c *Comment) IsLocal() bool {
	return c.Origin == posts.OriginLocal
}

// LikedByActor reports whether the actor is in the comment's like set
func (c *Comment) LikedByActor(actorID int64) bool {
	for _, id := range c.LikedBy {
		if id == actorID {
			return true
		}
	}
	return false
}
