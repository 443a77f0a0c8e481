package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Blogview/internal/core/authors"
	"Blogview/internal/core/posts"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL), server
}

func TestClient_GetPost_MapsFields(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/42", r.URL.Path)
		w.Write([]byte(`{
			"id": 42, "title": "T", "body": "B", "tags": ["history"],
			"reactions": {"likes": 10, "dislikes": 2}, "userId": 7
		}`))
	}))
	defer server.Close()

	p, err := client.GetPost(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, 10, p.Reactions.Likes)
	assert.Equal(t, int64(7), p.AuthorID)
	assert.Equal(t, posts.OriginRemote, p.Origin)
}

func TestClient_GetPost_NotFound(t *testing.T) {
	client, server := newTestClient(http.NotFoundHandler())
	defer server.Close()

	_, err := client.GetPost(context.Background(), 999)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestClient_GetPost_ServesSecondCallFromSnapshot(t *testing.T) {
	calls := 0
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"id": 1, "title": "once"}`))
	}))
	defer server.Close()

	_, err := client.GetPost(context.Background(), 1)
	require.NoError(t, err)
	_, err = client.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_ListCommentsForPost_NotFoundIsEmpty(t *testing.T) {
	client, server := newTestClient(http.NotFoundHandler())
	defer server.Close()

	list, err := client.ListCommentsForPost(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_ListCommentsForPost_MapsUserToAuthor(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/post/6", r.URL.Path)
		w.Write([]byte(`{"comments": [
			{"id": 1, "body": "nice", "postId": 6, "likes": 3,
			 "user": {"id": 9, "fullName": "Ada Lovelace"}}
		]}`))
	}))
	defer server.Close()

	list, err := client.ListCommentsForPost(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(9), list[0].AuthorID)
	assert.Equal(t, "Ada Lovelace", list[0].AuthorFullName)
	assert.Equal(t, 3, list[0].Likes)
	assert.Equal(t, posts.OriginRemote, list[0].Origin)
}

func TestClient_ListAuthors_AppliesExclusionSet(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": [
			{"id": 1, "firstName": "Emily", "lastName": "Johnson"},
			{"id": 3, "firstName": "Zero", "lastName": "Posts"},
			{"id": 5, "firstName": "James", "lastName": "Davis"}
		]}`))
	}))
	defer server.Close()

	list, err := client.ListAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Emily Johnson", list[0].FullName)
	assert.Equal(t, int64(5), list[1].ID)
}

func TestClient_GetAuthor_NotFound(t *testing.T) {
	client, server := newTestClient(http.NotFoundHandler())
	defer server.Close()

	_, err := client.GetAuthor(context.Background(), 999)
	assert.ErrorIs(t, err, authors.ErrNotFound)
}

func TestClient_SearchPosts_UnionsTextAndTagLegs(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/search":
			assert.Equal(t, "history", r.URL.Query().Get("q"))
			w.Write([]byte(`{"posts": [{"id": 1, "title": "text match"}, {"id": 2, "title": "both"}]}`))
		case "/posts/tag/history":
			w.Write([]byte(`{"posts": [{"id": 2, "title": "both"}, {"id": 3, "title": "tag match"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	list, err := client.SearchPosts(context.Background(), "history")
	require.NoError(t, err)
	require.Len(t, list, 3)
	ids := []int64{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestClient_SearchPosts_NotFoundLegContributesNothing(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/posts/search" {
			w.Write([]byte(`{"posts": [{"id": 1}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	list, err := client.SearchPosts(context.Background(), "nosuchtag")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClient_ServerErrorIsUpstreamUnavailable(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := client.SortPosts(context.Background(), posts.SortByID, posts.OrderAsc)
	assert.ErrorIs(t, err, posts.ErrUpstreamUnavailable)
}

func TestClient_TransportFailureIsUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listening anymore

	client := NewClient(server.URL)
	_, err := client.SortPosts(context.Background(), posts.SortByID, posts.OrderAsc)
	assert.ErrorIs(t, err, posts.ErrUpstreamUnavailable)
}

func TestClient_SortPosts_PassesSortParams(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "title", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"posts": []}`))
	}))
	defer server.Close()

	_, err := client.SortPosts(context.Background(), posts.SortByTitle, posts.OrderDesc)
	require.NoError(t, err)
}
