package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and runs
// migrations. Tests that need a live database skip when it is unset, so the
// suite stays runnable without infrastructure.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "../migrations"))

	// Each test starts from an empty local store
	_, err = db.Exec("TRUNCATE posts, comments")
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	})
	return db
}

func TestPostRepository_Create_AllocatorFloorOnEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	first := &posts.Post{Title: "first", Body: "b", Tags: []string{"go"}, AuthorID: 1}
	require.NoError(t, repo.Create(context.Background(), first))
	assert.Equal(t, int64(posts.MaxCatalogPostID+1), first.ID)

	second := &posts.Post{Title: "second", Body: "b", AuthorID: 1}
	require.NoError(t, repo.Create(context.Background(), second))
	assert.Equal(t, first.ID+1, second.ID)
}

func TestPostRepository_Create_ConcurrentIDsAreUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	const writers = 3
	results := make(chan int64, writers)
	errs := make(chan error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &posts.Post{Title: "concurrent", Body: "b", AuthorID: 1}
			if err := repo.Create(context.Background(), p); err != nil {
				errs <- err
				return
			}
			results <- p.ID
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range results {
		assert.False(t, seen[id], "id %d allocated twice", id)
		assert.Greater(t, id, int64(posts.MaxCatalogPostID))
		seen[id] = true
	}
	assert.Len(t, seen, writers)
}

func TestCommentRepository_Create_GlobalAllocatorFloor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	first := &comments.Comment{PostID: 300, Body: "c", AuthorID: 1, AuthorFullName: "A B"}
	require.NoError(t, repo.Create(context.Background(), first))
	assert.Equal(t, int64(comments.MaxCatalogCommentID+1), first.ID)

	// Ids come from one global counter regardless of which post owns the
	// comment
	other := &comments.Comment{PostID: 5, Body: "c", AuthorID: 1, AuthorFullName: "A B"}
	require.NoError(t, repo.Create(context.Background(), other))
	assert.Equal(t, first.ID+1, other.ID)
}

func TestCommentRepository_Create_ConcurrentAcrossPostsStaysUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	const writers = 3
	results := make(chan int64, writers)
	errs := make(chan error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		postID := int64(300 + i)
		go func() {
			defer wg.Done()
			c := &comments.Comment{PostID: postID, Body: "c", AuthorID: 1, AuthorFullName: "A B"}
			if err := repo.Create(context.Background(), c); err != nil {
				errs <- err
				return
			}
			results <- c.ID
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range results {
		assert.False(t, seen[id], "id %d allocated twice", id)
		assert.Greater(t, id, int64(comments.MaxCatalogCommentID))
		seen[id] = true
	}
	assert.Len(t, seen, writers)
}

func TestPostRepository_ApplyReaction_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	p := &posts.Post{Title: "t", Body: "b", AuthorID: 1}
	require.NoError(t, repo.Create(context.Background(), p))

	// First like
	res, err := repo.ApplyReaction(context.Background(), p.ID, 7, posts.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Likes)
	assert.Equal(t, 0, res.Dislikes)
	require.NotNil(t, res.UserReaction)
	assert.Equal(t, posts.ReactionLike, *res.UserReaction)

	// Same kind again removes it
	res, err = repo.ApplyReaction(context.Background(), p.ID, 7, posts.ReactionLike)
	require.NoError(t, err)
	assert.Zero(t, res.Likes)
	assert.Nil(t, res.UserReaction)

	// Like then switch to dislike
	_, err = repo.ApplyReaction(context.Background(), p.ID, 7, posts.ReactionLike)
	require.NoError(t, err)
	res, err = repo.ApplyReaction(context.Background(), p.ID, 7, posts.ReactionDislike)
	require.NoError(t, err)
	assert.Zero(t, res.Likes)
	assert.Equal(t, 1, res.Dislikes)

	// Persisted state matches the last result
	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, posts.ReactionCounts{Likes: 0, Dislikes: 1}, stored.Reactions)
	require.Len(t, stored.UserReactions, 1)
	assert.Equal(t, int64(7), stored.UserReactions[0].UserID)
	assert.Equal(t, posts.ReactionDislike, stored.UserReactions[0].Type)
}

func TestPostRepository_ApplyReaction_ConcurrentActorsAllCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	p := &posts.Post{Title: "t", Body: "b", AuthorID: 1}
	require.NoError(t, repo.Create(context.Background(), p))

	const actors = 5
	errs := make(chan error, actors)

	var wg sync.WaitGroup
	for i := 0; i < actors; i++ {
		wg.Add(1)
		actorID := int64(100 + i)
		go func() {
			defer wg.Done()
			_, err := repo.ApplyReaction(context.Background(), p.ID, actorID, posts.ReactionLike)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, actors, stored.Reactions.Likes)
	assert.Len(t, stored.UserReactions, actors)
}

func TestPostRepository_ApplyReaction_MissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.ApplyReaction(context.Background(), 9999, 7, posts.ReactionLike)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestCommentRepository_ApplyLike_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	c := &comments.Comment{PostID: 300, Body: "c", AuthorID: 1, AuthorFullName: "A B"}
	require.NoError(t, repo.Create(context.Background(), c))

	res, err := repo.ApplyLike(context.Background(), c.ID, 7)
	require.NoError(t, err)
	assert.True(t, res.LikedByCurrentUser)
	assert.Equal(t, 1, res.Likes)
	assert.Equal(t, int64(300), res.PostID)

	res, err = repo.ApplyLike(context.Background(), c.ID, 7)
	require.NoError(t, err)
	assert.False(t, res.LikedByCurrentUser)
	assert.Zero(t, res.Likes)

	stored, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Likes)
	assert.Empty(t, stored.LikedBy)
}

func TestIsDuplicateKey(t *testing.T) {
	dup := errors.New(`pq: duplicate key value violates unique constraint "posts_pkey"`)
	assert.True(t, isDuplicateKey(dup))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
	assert.False(t, isDuplicateKey(nil))
}
