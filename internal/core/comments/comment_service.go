package comments

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"Blogview/internal/core/permissions"
	"Blogview/internal/core/posts"
)

const listCacheTTL = 1 * time.Minute

// commentService implements the unified comment surface
type commentService struct {
	catalog Catalog
	repo    Repository
	lists   *expirable.LRU[int64, []Comment]
	logger  *slog.Logger
}

// NewCommentService creates the unified comment service
func NewCommentService(catalog Catalog, repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		catalog: catalog,
		repo:    repo,
		lists:   expirable.NewLRU[int64, []Comment](256, nil, listCacheTTL),
		logger:  logger,
	}
}

// ListForPost merges both comment sources: catalog comments first (only
// for posts in catalog range; a custom post cannot have remote comments),
// then local comments in id order.
func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]Comment, error) {
	if cached, ok := s.lists.Get(postID); ok {
		return cached, nil
	}

	var remote, local []Comment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if postID > posts.MaxCatalogPostID {
			return nil
		}
		var err error
		remote, err = s.catalog.ListCommentsForPost(gctx, postID)
		return err
	})
	g.Go(func() error {
		var err error
		local, err = s.repo.ListForPost(gctx, postID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unified := append(remote, local...)
	s.lists.Add(postID, unified)
	return unified, nil
}

// Create persists a new local comment. Any authenticated actor may comment
// on any post, regardless of post ownership or origin. The author's display
// name is denormalized onto the record at creation time.
func (s *commentService) Create(ctx context.Context, actorID *int64, postID int64, body string) (*Comment, error) {
	if actorID == nil {
		return nil, ErrNotAuthenticated
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, posts.NewValidationError("body", "comment body is required")
	}

	author, err := s.catalog.GetAuthor(ctx, *actorID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		PostID:         postID,
		Body:           body,
		LikedBy:        []int64{},
		AuthorID:       *actorID,
		AuthorFullName: author.FullName,
		Origin:         posts.OriginLocal,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.lists.Remove(postID)
	s.logger.Info("comment created", "id", comment.ID, "post", postID, "author", comment.AuthorID)
	return comment, nil
}

// Update changes the body of a local comment owned by the actor
func (s *commentService) Update(ctx context.Context, actorID *int64, id int64, body string) (*Comment, error) {
	if actorID == nil {
		return nil, ErrNotAuthenticated
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, posts.NewValidationError("body", "comment body cannot be empty")
	}

	comment, err := s.getLocalForWrite(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.lists.Remove(comment.PostID)
	return comment, nil
}

// Delete removes a local comment owned by the actor
func (s *commentService) Delete(ctx context.Context, actorID *int64, id int64) (int64, error) {
	if actorID == nil {
		return 0, ErrNotAuthenticated
	}

	comment, err := s.getLocalForWrite(ctx, id, actorID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	s.lists.Remove(comment.PostID)
	return comment.PostID, nil
}

// DeleteForPost removes all of a post's local comments. Catalog comments
// on the post, if any, are unaffected.
func (s *commentService) DeleteForPost(ctx context.Context, postID int64) error {
	if err := s.repo.DeleteForPost(ctx, postID); err != nil {
		return err
	}
	s.lists.Remove(postID)
	return nil
}

// InvalidateForPost drops the cached unified comment list of a post
func (s *commentService) InvalidateForPost(postID int64) {
	s.lists.Remove(postID)
}

// getLocalForWrite resolves a mutation target. A missing local record in
// catalog range means the target is a read-only catalog comment.
func (s *commentService) getLocalForWrite(ctx context.Context, id int64, actorID *int64) (*Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrCommentNotFound) {
		if id <= MaxCatalogCommentID {
			return nil, ErrForbidden
		}
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}

	if !permissions.Evaluate(comment.IsLocal(), comment.AuthorID, actorID).CanEdit {
		return nil, ErrForbidden
	}
	return comment, nil
}
