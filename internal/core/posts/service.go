package posts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"Blogview/internal/core/permissions"
)

const (
	// DefaultPerPage is used when the caller doesn't specify a page size
	DefaultPerPage = 25

	viewCacheTTL = 1 * time.Minute
)

// postService implements the unification engine over the remote catalog
// and the local store
type postService struct {
	catalog  Catalog
	repo     Repository
	comments CommentCascade
	cache    *viewCache
	logger   *slog.Logger
}

// NewPostService creates the unified post service
func NewPostService(catalog Catalog, repo Repository, comments CommentCascade, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		catalog:  catalog,
		repo:     repo,
		comments: comments,
		cache:    newViewCache(viewCacheTTL),
		logger:   logger,
	}
}

// GetByID checks the local store first: a local record with the id wins.
// Otherwise ids in catalog range are fetched from the catalog.
func (s *postService) GetByID(ctx context.Context, id int64) (*Post, error) {
	if p, ok := s.cache.getPost(id); ok {
		return p, nil
	}

	local, err := s.repo.GetByID(ctx, id)
	if err == nil {
		s.cache.putPost(local)
		return local, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if id > MaxCatalogPostID {
		return nil, ErrNotFound
	}

	remote, err := s.catalog.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.putPost(remote)
	return remote, nil
}

// ListByAuthor concatenates catalog posts then local posts for the author.
// Ids are disjoint across sources, so no dedup or re-sort is needed.
func (s *postService) ListByAuthor(ctx context.Context, authorID int64) ([]Post, error) {
	var remote, local []Post

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, err = s.catalog.ListPostsByAuthor(gctx, authorID)
		return err
	})
	g.Go(func() error {
		var err error
		local, err = s.repo.ListByAuthor(gctx, authorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(remote, local...), nil
}

// ListPage fetches both sources pre-sorted, merges them, re-sorts the full
// union with the shared comparator and slices the requested page. The
// re-sort is the authoritative step: the two independently sorted sequences
// are not assumed to interleave correctly.
func (s *postService) ListPage(ctx context.Context, req ListPageRequest) (*PageResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = DefaultPerPage
	}

	if res, ok := s.cache.getPage(req); ok {
		return res, nil
	}

	var remote, local []Post

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, err = s.catalog.SortPosts(gctx, req.SortField, req.SortOrder)
		return err
	})
	g.Go(func() error {
		var err error
		local, err = s.repo.List(gctx, req.SortField, req.SortOrder)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unified := append(remote, local...)
	SortUnified(unified, req.SortField, req.SortOrder)

	total := len(unified)
	start := (req.Page - 1) * req.PerPage
	if start > total {
		start = total
	}
	end := start + req.PerPage
	if end > total {
		end = total
	}

	res := &PageResult{Posts: unified[start:end], Total: total}
	s.cache.putPage(req, res)
	return res, nil
}

// Search unions catalog matches (text search plus tag-exact) with local
// matches, dedupes by id with remote precedence and sorts the whole set.
// The full result is returned; search is not paginated.
func (s *postService) Search(ctx context.Context, query string, field SortField, order SortOrder) (*PageResult, error) {
	var remote, local []Post

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, err = s.catalog.SearchPosts(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		local, err = s.repo.Search(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unified := DedupeByID(append(remote, local...))
	SortUnified(unified, field, order)

	return &PageResult{Posts: unified, Total: len(unified)}, nil
}

// SearchByTag restricts both sources to exact tag membership
func (s *postService) SearchByTag(ctx context.Context, slug string, field SortField, order SortOrder) (*PageResult, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return &PageResult{Posts: []Post{}, Total: 0}, nil
	}

	var remote, local []Post

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, err = s.catalog.ListPostsByTag(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		local, err = s.repo.ListByTag(gctx, slug)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unified := DedupeByID(append(remote, local...))
	SortUnified(unified, field, order)

	return &PageResult{Posts: unified, Total: len(unified)}, nil
}

// CreatePost validates input and persists a new local post owned by the
// actor. Id allocation happens atomically inside the repository, so the
// returned record carries the final authoritative id.
func (s *postService) CreatePost(ctx context.Context, actorID *int64, req CreatePostRequest) (*Post, error) {
	if actorID == nil {
		return nil, ErrNotAuthenticated
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, NewValidationError("body", "content is required")
	}

	post := &Post{
		Title:    title,
		Body:     body,
		Tags:     NormalizeTags(req.Tags),
		AuthorID: *actorID,
		Origin:   OriginLocal,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.cache.purge()
	s.logger.Info("post created", "id", post.ID, "author", post.AuthorID)
	return post, nil
}

// UpdatePost applies partial field changes to a local post owned by the actor
func (s *postService) UpdatePost(ctx context.Context, actorID *int64, id int64, req UpdatePostRequest) (*Post, error) {
	if actorID == nil {
		return nil, ErrNotAuthenticated
	}

	post, err := s.getLocalForWrite(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		post.Title = title
	}
	if req.Body != nil {
		body := strings.TrimSpace(*req.Body)
		if body == "" {
			return nil, NewValidationError("body", "content cannot be empty")
		}
		post.Body = body
	}
	if req.Tags != nil {
		post.Tags = NormalizeTags(req.Tags)
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.cache.purge()
	return post, nil
}

// DeletePost removes a local post owned by the actor. The post's local
// comments are cleaned up best-effort: a cascade failure is logged but does
// not reverse the deletion.
func (s *postService) DeletePost(ctx context.Context, actorID *int64, id int64) error {
	if actorID == nil {
		return ErrNotAuthenticated
	}

	if _, err := s.getLocalForWrite(ctx, id, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.purge()

	if err := s.comments.DeleteForPost(ctx, id); err != nil {
		s.logger.Error("comment cleanup after post delete failed", "post", id, "error", err)
	}

	s.logger.Info("post deleted", "id", id, "author", *actorID)
	return nil
}

// InvalidatePost drops cached views involving the post
func (s *postService) InvalidatePost(id int64) {
	s.cache.invalidatePost(id)
}

// getLocalForWrite resolves a mutation target. A missing local record in
// catalog range means the caller is trying to mutate a read-only catalog
// post, which is forbidden rather than not-found.
func (s *postService) getLocalForWrite(ctx context.Context, id int64, actorID *int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		if id <= MaxCatalogPostID {
			return nil, ErrForbidden
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !permissions.Evaluate(post.IsLocal(), post.AuthorID, actorID).CanEdit {
		return nil, ErrForbidden
	}
	return post, nil
}
