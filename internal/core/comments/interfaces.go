package comments

import (
	"context"

	"Blogview/internal/core/authors"
)

// Catalog is the read-only remote source of fixed comments
type Catalog interface {
	// ListCommentsForPost returns the catalog comments on a post.
	// A not-found response from the catalog is a valid empty state for
	// this endpoint, not an error.
	ListCommentsForPost(ctx context.Context, postID int64) ([]Comment, error)

	// GetAuthor resolves an author for denormalizing the display name
	// onto new local comments
	GetAuthor(ctx context.Context, id int64) (*authors.Author, error)
}

// Repository is the data access interface for locally stored comments
type Repository interface {
	// GetByID retrieves a local comment; ErrCommentNotFound when absent
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// ListForPost returns a post's local comments ordered by id ascending
	ListForPost(ctx context.Context, postID int64) ([]Comment, error)

	// Create persists a new comment, allocating its id atomically from the
	// single global counter. The id is written back to the comment and is
	// always above MaxCatalogCommentID, even on an empty store.
	Create(ctx context.Context, comment *Comment) error

	// Update persists a body change; ErrCommentNotFound when absent
	Update(ctx context.Context, comment *Comment) error

	// Delete removes a local comment; ErrCommentNotFound when absent
	Delete(ctx context.Context, id int64) error

	// DeleteForPost removes all local comments of a post
	DeleteForPost(ctx context.Context, postID int64) error
}

// Service is the unified comment surface
type Service interface {
	// ListForPost returns catalog comments (for posts in catalog range)
	// followed by local comments
	ListForPost(ctx context.Context, postID int64) ([]Comment, error)

	// Create persists a new local comment by the actor on any post
	Create(ctx context.Context, actorID *int64, postID int64, body string) (*Comment, error)

	// Update changes the body of a local comment owned by the actor
	Update(ctx context.Context, actorID *int64, id int64, body string) (*Comment, error)

	// Delete removes a local comment owned by the actor, returning the
	// post id it belonged to
	Delete(ctx context.Context, actorID *int64, id int64) (int64, error)

	// DeleteForPost is the cascade entry point used when a post is deleted
	DeleteForPost(ctx context.Context, postID int64) error

	// InvalidateForPost drops the cached unified comment list of a post.
	// Called after out-of-band mutations such as comment likes.
	InvalidateForPost(postID int64)
}
