// Package catalog implements the read-only client for the remote content
// catalog: a fixed, DummyJSON-shaped API serving posts 1..251, comments up
// to id 340, authors and tags. Results are immutable snapshots; nothing is
// ever written back.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"Blogview/internal/core/authors"
	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
	"Blogview/internal/core/tags"
)

// DefaultBaseURL is the production catalog endpoint
const DefaultBaseURL = "https://dummyjson.com"

const (
	requestTimeout = 10 * time.Second
	snapshotTTL    = 1 * time.Hour
)

// errNotFound marks a catalog 404 internally; public methods translate it
// per endpoint (empty result, posts.ErrNotFound or authors.ErrNotFound)
var errNotFound = errors.New("catalog: not found")

// excludedAuthorIDs is the fixed set of catalog author ids with zero
// posts, filtered out of author listings
var excludedAuthorIDs = map[int64]struct{}{
	3: {}, 4: {}, 8: {}, 10: {}, 14: {}, 17: {}, 20: {}, 21: {}, 22: {}, 25: {},
	27: {}, 33: {}, 38: {}, 39: {}, 40: {}, 41: {}, 42: {}, 49: {}, 50: {}, 53: {},
	64: {}, 68: {}, 71: {}, 75: {}, 78: {}, 85: {}, 86: {}, 96: {}, 100: {}, 103: {},
	109: {}, 111: {}, 117: {}, 119: {}, 123: {}, 129: {}, 137: {}, 139: {}, 141: {},
	146: {}, 147: {}, 151: {}, 153: {}, 158: {}, 160: {}, 165: {}, 166: {}, 176: {},
	186: {}, 193: {}, 194: {}, 197: {}, 202: {},
}

// Client talks to the remote catalog with retries, a bounded per-request
// timeout and a TTL cache over the slow-changing endpoints
type Client struct {
	base string
	http *retryablehttp.Client

	// snapshots caches raw response bodies of cacheable endpoints by path
	snapshots *expirable.LRU[string, []byte]
}

// NewClient creates a catalog client for the given base URL
// (DefaultBaseURL when empty)
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = requestTimeout
	rc.Logger = nil

	return &Client{
		base:      baseURL,
		http:      rc,
		snapshots: expirable.NewLRU[string, []byte](512, nil, snapshotTTL),
	}
}

// GetPost fetches one catalog post; posts.ErrNotFound for unknown ids
func (c *Client) GetPost(ctx context.Context, id int64) (*posts.Post, error) {
	var raw remotePost
	err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), true, &raw)
	if errors.Is(err, errNotFound) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := raw.toPost()
	return &p, nil
}

// ListCommentsForPost returns the catalog comments on a post. A catalog
// 404 here is a valid empty state, not an error.
func (c *Client) ListCommentsForPost(ctx context.Context, postID int64) ([]comments.Comment, error) {
	var payload commentsPayload
	err := c.getJSON(ctx, fmt.Sprintf("/comments/post/%d", postID), true, &payload)
	if errors.Is(err, errNotFound) {
		return []comments.Comment{}, nil
	}
	if err != nil {
		return nil, err
	}
	return payload.toComments(), nil
}

// GetAuthor fetches one catalog author
func (c *Client) GetAuthor(ctx context.Context, id int64) (*authors.Author, error) {
	var raw remoteAuthor
	err := c.getJSON(ctx, fmt.Sprintf("/users/%d?select=firstName,lastName", id), true, &raw)
	if errors.Is(err, errNotFound) {
		return nil, authors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a := raw.toAuthor()
	return &a, nil
}

// ListAuthors returns all catalog authors minus the fixed exclusion set of
// authors with zero posts
func (c *Client) ListAuthors(ctx context.Context) ([]authors.Author, error) {
	var payload authorsPayload
	if err := c.getJSON(ctx, "/users?limit=0&select=firstName,lastName", true, &payload); err != nil {
		return nil, err
	}

	out := make([]authors.Author, 0, len(payload.Users))
	for _, u := range payload.Users {
		if _, excluded := excludedAuthorIDs[u.ID]; excluded {
			continue
		}
		out = append(out, u.toAuthor())
	}
	return out, nil
}

// ListTags returns the catalog's tag list
func (c *Client) ListTags(ctx context.Context) ([]tags.Tag, error) {
	var raw []remoteTag
	if err := c.getJSON(ctx, "/posts/tags", true, &raw); err != nil {
		return nil, err
	}

	out := make([]tags.Tag, 0, len(raw))
	for _, t := range raw {
		out = append(out, tags.Tag{Slug: t.Slug, Name: t.Name})
	}
	return out, nil
}

// ListPostsByTag returns catalog posts carrying the exact tag slug
func (c *Client) ListPostsByTag(ctx context.Context, slug string) ([]posts.Post, error) {
	var payload postsPayload
	err := c.getJSON(ctx, "/posts/tag/"+url.PathEscape(slug), false, &payload)
	if errors.Is(err, errNotFound) {
		return []posts.Post{}, nil
	}
	if err != nil {
		return nil, err
	}
	return payload.toPosts(), nil
}

// ListPostsByAuthor returns an author's catalog posts in catalog order
func (c *Client) ListPostsByAuthor(ctx context.Context, authorID int64) ([]posts.Post, error) {
	var payload postsPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d/posts", authorID), false, &payload); err != nil {
		return nil, err
	}
	return payload.toPosts(), nil
}

// SearchPosts unions the catalog's text search with an exact tag match for
// the same query, de-duplicated by id. The two legs run concurrently; a
// not-found leg contributes nothing, but a transport failure fails the
// whole search.
func (c *Client) SearchPosts(ctx context.Context, query string) ([]posts.Post, error) {
	var byText, byTag postsPayload

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := c.getJSON(gctx, "/posts/search?q="+url.QueryEscape(query), false, &byText)
		if errors.Is(err, errNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := c.getJSON(gctx, "/posts/tag/"+url.PathEscape(query), false, &byTag)
		if errors.Is(err, errNotFound) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return posts.DedupeByID(append(byText.toPosts(), byTag.toPosts()...)), nil
}

// SortPosts returns the full catalog sorted server-side
func (c *Client) SortPosts(ctx context.Context, field posts.SortField, order posts.SortOrder) ([]posts.Post, error) {
	path := fmt.Sprintf("/posts?sortBy=%s&order=%s&limit=0", field, order)
	var payload postsPayload
	if err := c.getJSON(ctx, path, false, &payload); err != nil {
		return nil, err
	}
	return payload.toPosts(), nil
}

// getJSON fetches a catalog path and decodes the response body. Cacheable
// endpoints are served from the snapshot cache within the TTL. Transport
// and server failures are surfaced as posts.ErrUpstreamUnavailable so that
// aggregate reads fail as a whole.
func (c *Client) getJSON(ctx context.Context, path string, cacheable bool, out any) error {
	if cacheable {
		if body, ok := c.snapshots.Get(path); ok {
			return json.Unmarshal(body, out)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", posts.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: unexpected status %d", posts.ErrUpstreamUnavailable, path, resp.StatusCode)
	}

	var body []byte
	body, err = readAll(resp)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", posts.ErrUpstreamUnavailable, path, err)
	}

	if cacheable {
		c.snapshots.Add(path, body)
	}
	return json.Unmarshal(body, out)
}
