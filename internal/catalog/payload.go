package catalog

import (
	"io"
	"net/http"

	"Blogview/internal/core/authors"
	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
)

// Wire shapes of the catalog API, kept separate from the domain models so
// the remote schema can drift without touching consumers.

type remotePost struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	Reactions struct {
		Likes    int `json:"likes"`
		Dislikes int `json:"dislikes"`
	} `json:"reactions"`
	UserID int64 `json:"userId"`
}

func (p remotePost) toPost() posts.Post {
	return posts.Post{
		ID:    p.ID,
		Title: p.Title,
		Body:  p.Body,
		Tags:  p.Tags,
		Reactions: posts.ReactionCounts{
			Likes:    p.Reactions.Likes,
			Dislikes: p.Reactions.Dislikes,
		},
		AuthorID: p.UserID,
		Origin:   posts.OriginRemote,
	}
}

type postsPayload struct {
	Posts []remotePost `json:"posts"`
}

func (p postsPayload) toPosts() []posts.Post {
	out := make([]posts.Post, 0, len(p.Posts))
	for _, rp := range p.Posts {
		out = append(out, rp.toPost())
	}
	return out
}

type remoteComment struct {
	ID     int64  `json:"id"`
	Body   string `json:"body"`
	PostID int64  `json:"postId"`
	Likes  int    `json:"likes"`
	User   struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"user"`
}

type commentsPayload struct {
	Comments []remoteComment `json:"comments"`
}

func (p commentsPayload) toComments() []comments.Comment {
	out := make([]comments.Comment, 0, len(p.Comments))
	for _, rc := range p.Comments {
		out = append(out, comments.Comment{
			ID:             rc.ID,
			PostID:         rc.PostID,
			Body:           rc.Body,
			Likes:          rc.Likes,
			AuthorID:       rc.User.ID,
			AuthorFullName: rc.User.FullName,
			Origin:         posts.OriginRemote,
		})
	}
	return out
}

type remoteAuthor struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (a remoteAuthor) toAuthor() authors.Author {
	return authors.Author{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FirstName + " " + a.LastName,
	}
}

type authorsPayload struct {
	Users []remoteAuthor `json:"users"`
}

type remoteTag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func readAll(resp *http.Response) ([]byte, error) {
	return io.ReadAll(resp.Body)
}
