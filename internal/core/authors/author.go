// Package authors exposes the remote catalog's author namespace.
// Local posts and comments borrow this namespace for ownership, so author
// records themselves are always catalog snapshots.
package authors

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an author id is unknown to the catalog
var ErrNotFound = errors.New("author not found")

// Author is a catalog author
type Author struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

// Catalog is the read-only remote author source. ListAuthors already has
// the fixed zero-post author exclusion set applied.
type Catalog interface {
	ListAuthors(ctx context.Context) ([]Author, error)
	GetAuthor(ctx context.Context, id int64) (*Author, error)
}

// Service is the author read surface
type Service interface {
	List(ctx context.Context) ([]Author, error)
	Get(ctx context.Context, id int64) (*Author, error)
}

type authorService struct {
	catalog Catalog
}

// NewAuthorService creates the author service
func NewAuthorService(catalog Catalog) Service {
	return &authorService{catalog: catalog}
}

func (s *authorService) List(ctx context.Context) ([]Author, error) {
	return s.catalog.ListAuthors(ctx)
}

func (s *authorService) Get(ctx context.Context, id int64) (*Author, error) {
	return s.catalog.GetAuthor(ctx, id)
}
