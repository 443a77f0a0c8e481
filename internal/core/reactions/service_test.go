package reactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
)

// Mock implementations for testing

type mockPostStore struct {
	applied []int64
	result  *PostReactionResult
	err     error
}

func (m *mockPostStore) ApplyReaction(ctx context.Context, postID, actorID int64, kind posts.ReactionKind) (*PostReactionResult, error) {
	m.applied = append(m.applied, postID)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	k := kind
	return &PostReactionResult{PostID: postID, Likes: 1, UserReaction: &k}, nil
}

type mockCommentStore struct {
	applied []int64
	result  *CommentLikeResult
	err     error
}

func (m *mockCommentStore) ApplyLike(ctx context.Context, commentID, actorID int64) (*CommentLikeResult, error) {
	m.applied = append(m.applied, commentID)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &CommentLikeResult{CommentID: commentID, PostID: 400, Likes: 1, LikedByCurrentUser: true}, nil
}

type mockPostViews struct{ invalidated []int64 }

func (m *mockPostViews) InvalidatePost(id int64) { m.invalidated = append(m.invalidated, id) }

type mockCommentViews struct{ invalidated []int64 }

func (m *mockCommentViews) InvalidateForPost(postID int64) {
	m.invalidated = append(m.invalidated, postID)
}

func actor(id int64) *int64 { return &id }

func TestReactionService_ReactToPost_RequiresActor(t *testing.T) {
	service := NewReactionService(&mockPostStore{}, &mockCommentStore{}, &mockPostViews{}, &mockCommentViews{}, nil)

	_, err := service.ReactToPost(context.Background(), nil, 300, posts.ReactionLike)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestReactionService_ReactToPost_RejectsInvalidKind(t *testing.T) {
	service := NewReactionService(&mockPostStore{}, &mockCommentStore{}, &mockPostViews{}, &mockCommentViews{}, nil)

	_, err := service.ReactToPost(context.Background(), actor(1), 300, posts.ReactionKind("love"))
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestReactionService_ReactToPost_CatalogRangeIsForbidden(t *testing.T) {
	store := &mockPostStore{}
	service := NewReactionService(store, &mockCommentStore{}, &mockPostViews{}, &mockCommentViews{}, nil)

	_, err := service.ReactToPost(context.Background(), actor(1), posts.MaxCatalogPostID, posts.ReactionLike)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, store.applied)
}

func TestReactionService_ReactToPost_AppliesAndInvalidates(t *testing.T) {
	store := &mockPostStore{}
	views := &mockPostViews{}
	service := NewReactionService(store, &mockCommentStore{}, views, &mockCommentViews{}, nil)

	result, err := service.ReactToPost(context.Background(), actor(7), 300, posts.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(300), result.PostID)
	assert.Equal(t, []int64{300}, store.applied)
	assert.Equal(t, []int64{300}, views.invalidated)
}

func TestReactionService_ReactToPost_StoreErrorSkipsInvalidation(t *testing.T) {
	store := &mockPostStore{err: posts.ErrNotFound}
	views := &mockPostViews{}
	service := NewReactionService(store, &mockCommentStore{}, views, &mockCommentViews{}, nil)

	_, err := service.ReactToPost(context.Background(), actor(7), 300, posts.ReactionLike)
	assert.ErrorIs(t, err, posts.ErrNotFound)
	assert.Empty(t, views.invalidated)
}

func TestReactionService_LikeComment_RequiresActor(t *testing.T) {
	service := NewReactionService(&mockPostStore{}, &mockCommentStore{}, &mockPostViews{}, &mockCommentViews{}, nil)

	_, err := service.LikeComment(context.Background(), nil, 400)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestReactionService_LikeComment_CatalogRangeIsForbidden(t *testing.T) {
	store := &mockCommentStore{}
	service := NewReactionService(&mockPostStore{}, store, &mockPostViews{}, &mockCommentViews{}, nil)

	_, err := service.LikeComment(context.Background(), actor(1), comments.MaxCatalogCommentID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, store.applied)
}

func TestReactionService_LikeComment_InvalidatesOwningPost(t *testing.T) {
	store := &mockCommentStore{result: &CommentLikeResult{CommentID: 400, PostID: 260, Likes: 2, LikedByCurrentUser: true}}
	views := &mockCommentViews{}
	service := NewReactionService(&mockPostStore{}, store, &mockPostViews{}, views, nil)

	result, err := service.LikeComment(context.Background(), actor(7), 400)
	require.NoError(t, err)
	assert.True(t, result.LikedByCurrentUser)
	assert.Equal(t, []int64{260}, views.invalidated)
}
