package reactions

import (
	"context"
	"log/slog"

	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
)

type reactionService struct {
	postStore    PostStore
	commentStore CommentStore
	postViews    PostViews
	commentViews CommentViews
	logger       *slog.Logger
}

// NewReactionService creates the reaction reconciler
func NewReactionService(postStore PostStore, commentStore CommentStore, postViews PostViews, commentViews CommentViews, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &reactionService{
		postStore:    postStore,
		commentStore: commentStore,
		postViews:    postViews,
		commentViews: commentViews,
		logger:       logger,
	}
}

// ReactToPost toggles the actor's reaction on a local post.
// Catalog posts never accept reactions: their counts are a static snapshot.
func (s *reactionService) ReactToPost(ctx context.Context, actorID *int64, postID int64, kind posts.ReactionKind) (*PostReactionResult, error) {
	if actorID == nil {
		return nil, ErrNotAuthenticated
	}
	if kind != posts.ReactionLike && kind != posts.ReactionDislike {
		return nil, ErrInvalidKind
	}
	if postID <= posts.MaxCatalogPostID {
		return nil, ErrForbidden
	}

	result, err := s.postStore.ApplyReaction(ctx, postID, *actorID, kind)
	if err != nil {
		return nil, err
	}

	s.postViews.InvalidatePost(postID)
	s.logger.Info("post reaction applied", "post", postID, "actor", *actorID, "kind", kind)
	return result, nil
}

// LikeComment toggles the actor's like on a local comment.
// Comments have no dislike: this is a binary toggle.
func (s *reactionService) LikeComment(ctx context.Context, actorID *int64, commentID int64) (*CommentLikeResult, error) {
	if actorID == nil {
		return nil, ErrNotAuthenticated
	}
	if commentID <= comments.MaxCatalogCommentID {
		return nil, ErrForbidden
	}

	result, err := s.commentStore.ApplyLike(ctx, commentID, *actorID)
	if err != nil {
		return nil, err
	}

	s.commentViews.InvalidateForPost(result.PostID)
	s.logger.Info("comment like toggled", "comment", commentID, "actor", *actorID, "liked", result.LikedByCurrentUser)
	return result, nil
}
