package posts

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// viewCache holds recently assembled unified views. Catalog data changes
// rarely so entries get a short TTL; any local write purges page views,
// since list membership and totals shift with every mutation.
type viewCache struct {
	posts *expirable.LRU[int64, *Post]
	pages *expirable.LRU[string, *PageResult]
}

func newViewCache(ttl time.Duration) *viewCache {
	return &viewCache{
		posts: expirable.NewLRU[int64, *Post](512, nil, ttl),
		pages: expirable.NewLRU[string, *PageResult](128, nil, ttl),
	}
}

func pageKey(req ListPageRequest) string {
	return fmt.Sprintf("%s:%s:%d:%d", req.SortField, req.SortOrder, req.Page, req.PerPage)
}

func (c *viewCache) getPost(id int64) (*Post, bool) {
	return c.posts.Get(id)
}

func (c *viewCache) putPost(p *Post) {
	c.posts.Add(p.ID, p)
}

func (c *viewCache) getPage(req ListPageRequest) (*PageResult, bool) {
	return c.pages.Get(pageKey(req))
}

func (c *viewCache) putPage(req ListPageRequest, res *PageResult) {
	c.pages.Add(pageKey(req), res)
}

// invalidatePost drops the single-post view and all page views
func (c *viewCache) invalidatePost(id int64) {
	c.posts.Remove(id)
	c.pages.Purge()
}

// purge drops every cached view; used after create/delete where the set of
// affected keys isn't knowable
func (c *viewCache) purge() {
	c.posts.Purge()
	c.pages.Purge()
}
