package post

import (
	"Blogview/internal/core/permissions"
	"Blogview/internal/core/posts"
)

// postView is a unified post annotated with the current actor's
// capabilities and reaction state
type postView struct {
	posts.Post
	UserReaction *posts.ReactionKind      `json:"userReaction"`
	Capabilities permissions.Capabilities `json:"capabilities"`
}

// pageView mirrors posts.PageResult with annotated entries
type pageView struct {
	Posts []postView `json:"posts"`
	Total int        `json:"total"`
}

func toView(p posts.Post, actorID *int64) postView {
	view := postView{
		Post:         p,
		Capabilities: permissions.Evaluate(p.IsLocal(), p.AuthorID, actorID),
	}
	if actorID != nil && p.IsLocal() {
		view.UserReaction = p.ReactionOf(*actorID)
	}
	return view
}

func toPageView(result *posts.PageResult, actorID *int64) pageView {
	views := make([]postView, 0, len(result.Posts))
	for _, p := range result.Posts {
		views = append(views, toView(p, actorID))
	}
	return pageView{Posts: views, Total: result.Total}
}
