// Package tags merges the remote catalog's tag list with the tags of all
// local posts into one case-insensitively de-duplicated set.
package tags

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Tag is a unified tag entry. Slug is the lowercase identity used for
// matching; Name is the display form, Title-Cased on the first letter.
type Tag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Catalog is the read-only remote tag source
type Catalog interface {
	ListTags(ctx context.Context) ([]Tag, error)
}

// LocalTagSource yields the raw tag names across all local posts
type LocalTagSource interface {
	ListTagNames(ctx context.Context) ([]string, error)
}

// Service is the unified tag surface
type Service interface {
	// List returns remote tags plus local-post tags, de-duplicated by slug
	// case-insensitively with remote entries taking precedence
	List(ctx context.Context) ([]Tag, error)
}

type tagService struct {
	catalog Catalog
	local   LocalTagSource
}

// NewTagService creates the unified tag service
func NewTagService(catalog Catalog, local LocalTagSource) Service {
	return &tagService{catalog: catalog, local: local}
}

func (s *tagService) List(ctx context.Context) ([]Tag, error) {
	var remote []Tag
	var localNames []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, err = s.catalog.ListTags(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		localNames, err = s.local.ListTagNames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(remote)+len(localNames))
	unified := make([]Tag, 0, len(remote)+len(localNames))

	for _, t := range remote {
		slug := strings.ToLower(strings.TrimSpace(t.Slug))
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unified = append(unified, Tag{Slug: slug, Name: TitleCase(t.Name)})
	}

	for _, name := range localNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		slug := strings.ToLower(name)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unified = append(unified, Tag{Slug: slug, Name: TitleCase(name)})
	}

	return unified, nil
}

// TitleCase lowercases the name and uppercases its first letter
func TitleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
