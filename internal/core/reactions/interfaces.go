package reactions

import (
	"context"

	"Blogview/internal/core/posts"
)

// PostReactionResult reflects the post-update reaction state
type PostReactionResult struct {
	PostID       int64               `json:"postId"`
	Likes        int                 `json:"likes"`
	Dislikes     int                 `json:"dislikes"`
	UserReaction *posts.ReactionKind `json:"userReaction"`
}

// CommentLikeResult reflects the post-update like state of a comment
type CommentLikeResult struct {
	CommentID          int64 `json:"commentId"`
	PostID             int64 `json:"postId"`
	Likes              int   `json:"likes"`
	LikedByCurrentUser bool  `json:"likedByCurrentUser"`
}

// PostStore applies a reaction toggle to a post as a single atomic
// document update: the read-modify-persist of the per-actor list and the
// counters must not race a concurrent writer.
type PostStore interface {
	ApplyReaction(ctx context.Context, postID, actorID int64, kind posts.ReactionKind) (*PostReactionResult, error)
}

// CommentStore applies a like toggle to a comment atomically
type CommentStore interface {
	ApplyLike(ctx context.Context, commentID, actorID int64) (*CommentLikeResult, error)
}

// PostViews invalidates cached unified post views after a reaction
type PostViews interface {
	InvalidatePost(id int64)
}

// CommentViews invalidates a post's cached comment list after a like
type CommentViews interface {
	InvalidateForPost(postID int64)
}

// Service is the reaction reconciler
type Service interface {
	// ReactToPost toggles the actor's like/dislike on a local post and
	// returns the resulting aggregate state
	ReactToPost(ctx context.Context, actorID *int64, postID int64, kind posts.ReactionKind) (*PostReactionResult, error)

	// LikeComment toggles the actor's like on a local comment
	LikeComment(ctx context.Context, actorID *int64, commentID int64) (*CommentLikeResult, error)
}
