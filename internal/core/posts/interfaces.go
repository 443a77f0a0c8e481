package posts

import "context"

// Catalog is the read-only remote source of fixed posts (ids 1..251).
// Implementations must apply a bounded timeout; a non-responsive catalog
// fails the call rather than hanging.
type Catalog interface {
	// GetPost fetches a single catalog post; ErrNotFound for unknown ids
	GetPost(ctx context.Context, id int64) (*Post, error)

	// ListPostsByAuthor returns the author's posts in catalog order
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]Post, error)

	// SearchPosts returns the union of text-search and tag-exact matches,
	// de-duplicated by id
	SearchPosts(ctx context.Context, query string) ([]Post, error)

	// ListPostsByTag returns posts carrying the exact tag slug
	ListPostsByTag(ctx context.Context, slug string) ([]Post, error)

	// SortPosts returns the full catalog sorted server-side
	SortPosts(ctx context.Context, field SortField, order SortOrder) ([]Post, error)
}

// Repository is the data access interface for locally stored posts
type Repository interface {
	// GetByID retrieves a local post; ErrNotFound when absent
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List returns all local posts sorted by the store's native sort
	List(ctx context.Context, field SortField, order SortOrder) ([]Post, error)

	// ListByAuthor returns the author's local posts in natural store order
	ListByAuthor(ctx context.Context, authorID int64) ([]Post, error)

	// Search matches title/body by case-insensitive substring and tags by
	// case-insensitive exact equality
	Search(ctx context.Context, query string) ([]Post, error)

	// ListByTag matches tags by case-insensitive exact equality
	ListByTag(ctx context.Context, slug string) ([]Post, error)

	// Create persists a new post, allocating its id atomically.
	// The allocated id is written back to the post and is always above
	// MaxCatalogPostID, even on an empty store.
	Create(ctx context.Context, post *Post) error

	// Update persists title/body/tags changes; ErrNotFound when absent
	Update(ctx context.Context, post *Post) error

	// Delete removes a local post; ErrNotFound when absent
	Delete(ctx context.Context, id int64) error
}

// CommentCascade removes a deleted post's local comments.
// The cascade is best-effort: a cleanup failure is reported but does not
// roll back the post deletion.
type CommentCascade interface {
	DeleteForPost(ctx context.Context, postID int64) error
}

// ListPageRequest selects one page of the globally sorted unified collection
type ListPageRequest struct {
	Page      int
	PerPage   int
	SortField SortField
	SortOrder SortOrder
}

// PageResult is a slice of the unified collection plus the full merged total
type PageResult struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

// CreatePostRequest is the input for creating a local post
type CreatePostRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// UpdatePostRequest carries partial updates; nil fields are left unchanged
type UpdatePostRequest struct {
	Title *string  `json:"title,omitempty"`
	Body  *string  `json:"body,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Service is the unification engine: merged, de-duplicated, sorted reads
// over both sources plus guarded writes to the local store
type Service interface {
	// GetByID returns the unified post: local record if one exists, else
	// the catalog post for ids in catalog range, else ErrNotFound
	GetByID(ctx context.Context, id int64) (*Post, error)

	// ListByAuthor returns catalog posts then local posts for the author,
	// each group in source order, without re-sorting
	ListByAuthor(ctx context.Context, authorID int64) ([]Post, error)

	// ListPage merges both pre-sorted sources, re-sorts the union stably
	// and slices the requested page. Out-of-range pages yield an empty
	// slice, not an error.
	ListPage(ctx context.Context, req ListPageRequest) (*PageResult, error)

	// Search unions catalog search results with local matches, dedupes by
	// id with remote precedence, and sorts the whole result set. Search
	// results are not paginated.
	Search(ctx context.Context, query string, field SortField, order SortOrder) (*PageResult, error)

	// SearchByTag restricts both sources to exact tag membership.
	// A blank slug short-circuits to an empty result.
	SearchByTag(ctx context.Context, slug string, field SortField, order SortOrder) (*PageResult, error)

	// CreatePost persists a new local post owned by the actor
	CreatePost(ctx context.Context, actorID *int64, req CreatePostRequest) (*Post, error)

	// UpdatePost applies partial changes to a local post owned by the actor
	UpdatePost(ctx context.Context, actorID *int64, id int64, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a local post owned by the actor and cascades to
	// its local comments best-effort
	DeletePost(ctx context.Context, actorID *int64, id int64) error

	// InvalidatePost drops any cached unified views involving the post.
	// Called after out-of-band mutations such as reactions.
	InvalidatePost(id int64)
}
