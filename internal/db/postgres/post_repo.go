package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"Blogview/internal/core/posts"
	"Blogview/internal/core/reactions"
)

// createAttempts bounds the retry loop around atomic id allocation: two
// simultaneous creates can compute the same id, in which case the loser
// hits the primary key and retries
const createAttempts = 3

// PostRepository is the PostgreSQL gateway for locally stored posts.
// It implements posts.Repository, reactions.PostStore and
// tags.LocalTagSource.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = "id, title, body, tags, likes, dislikes, user_reactions, user_id"

// GetByID retrieves a local post by id
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = $1", id)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List returns all local posts sorted by the store's native sort
func (r *PostRepository) List(ctx context.Context, field posts.SortField, order posts.SortOrder) ([]posts.Post, error) {
	query := "SELECT " + postColumns + " FROM posts ORDER BY " + orderClause(field, order)
	return r.queryPosts(ctx, query)
}

// ListByAuthor returns the author's local posts in natural store order
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]posts.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE user_id = $1 ORDER BY id"
	return r.queryPosts(ctx, query, authorID)
}

// Search matches title/body by case-insensitive substring and tags by
// case-insensitive exact equality
func (r *PostRepository) Search(ctx context.Context, query string) ([]posts.Post, error) {
	q := `
		SELECT ` + postColumns + ` FROM posts
		WHERE title ILIKE $1
		   OR body ILIKE $1
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE lower(tag) = lower($2))
		ORDER BY id
	`
	return r.queryPosts(ctx, q, "%"+query+"%", query)
}

// ListByTag matches tags by case-insensitive exact equality
func (r *PostRepository) ListByTag(ctx context.Context, slug string) ([]posts.Post, error) {
	q := `
		SELECT ` + postColumns + ` FROM posts
		WHERE EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE lower(tag) = lower($1))
		ORDER BY id
	`
	return r.queryPosts(ctx, q, slug)
}

// Create inserts a new post, allocating its id in the same statement:
// one past the highest existing local id, never below the catalog ceiling.
// Allocation and persist are one atomic INSERT, so concurrent creates
// cannot both commit the same id; the loser retries.
func (r *PostRepository) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, title, body, tags, likes, dislikes, user_reactions, user_id)
		SELECT GREATEST($1, COALESCE(MAX(id), $1)) + 1, $2, $3, $4, 0, 0, '[]'::jsonb, $5
		FROM posts
		RETURNING id
	`

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err := r.db.QueryRowContext(ctx, query,
			posts.MaxCatalogPostID, post.Title, post.Body, pq.Array(post.Tags), post.AuthorID,
		).Scan(&post.ID)

		if err == nil {
			post.Origin = posts.OriginLocal
			post.Reactions = posts.ReactionCounts{}
			return nil
		}
		if !isDuplicateKey(err) {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		lastErr = err
	}

	return fmt.Errorf("failed to allocate post id after %d attempts: %w", createAttempts, lastErr)
}

// Update persists title/body/tags changes
func (r *PostRepository) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET title = $1, body = $2, tags = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Body, pq.Array(post.Tags), post.ID,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// Delete removes a local post
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	err := r.db.QueryRowContext(ctx,
		"DELETE FROM posts WHERE id = $1 RETURNING id", id).Scan(&deleted)

	if err == sql.ErrNoRows {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// ApplyReaction performs the reaction toggle as one transaction: the row
// is locked, the per-actor list and counters are recomputed together and
// written back in a single update. Concurrent reactions on the same post
// serialize on the row lock, so no update is lost.
func (r *PostRepository) ApplyReaction(ctx context.Context, postID, actorID int64, kind posts.ReactionKind) (*reactions.PostReactionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin reaction tx: %w", err)
	}
	defer tx.Rollback()

	var counts posts.ReactionCounts
	var reactionsJSON []byte
	err = tx.QueryRowContext(ctx,
		"SELECT likes, dislikes, user_reactions FROM posts WHERE id = $1 FOR UPDATE",
		postID,
	).Scan(&counts.Likes, &counts.Dislikes, &reactionsJSON)

	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock post for reaction: %w", err)
	}

	var entries []posts.UserReaction
	if len(reactionsJSON) > 0 {
		// UserReaction's decoder coerces historical string actor ids to
		// numeric form, so matching below is always canonical
		if err := json.Unmarshal(reactionsJSON, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode reaction entries of post %d: %w", postID, err)
		}
	}

	updated, newCounts, userReaction := reactions.ApplyPostToggle(entries, counts, actorID, kind)

	encoded, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reaction entries: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE posts SET likes = $1, dislikes = $2, user_reactions = $3, updated_at = NOW() WHERE id = $4",
		newCounts.Likes, newCounts.Dislikes, encoded, postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to persist reaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reaction: %w", err)
	}

	return &reactions.PostReactionResult{
		PostID:       postID,
		Likes:        newCounts.Likes,
		Dislikes:     newCounts.Dislikes,
		UserReaction: userReaction,
	}, nil
}

// ListTagNames returns the distinct raw tag names across all local posts
func (r *PostRepository) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT unnest(tags) FROM posts")
	if err != nil {
		return nil, fmt.Errorf("failed to list tag names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	out := []posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, *post)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var post posts.Post
	var tags pq.StringArray
	var reactionsJSON []byte

	err := row.Scan(
		&post.ID, &post.Title, &post.Body, &tags,
		&post.Reactions.Likes, &post.Reactions.Dislikes,
		&reactionsJSON, &post.AuthorID,
	)
	if err != nil {
		return nil, err
	}

	post.Tags = []string(tags)
	if len(reactionsJSON) > 0 {
		if err := json.Unmarshal(reactionsJSON, &post.UserReactions); err != nil {
			return nil, fmt.Errorf("invalid user_reactions on post %d: %w", post.ID, err)
		}
	}
	post.Origin = posts.OriginLocal
	return &post, nil
}

// orderClause maps the sort key onto a whitelisted ORDER BY fragment.
// Text fields sort case-insensitively to match the unified comparator.
func orderClause(field posts.SortField, order posts.SortOrder) string {
	col := "id"
	switch field {
	case posts.SortByTitle:
		col = "lower(title)"
	case posts.SortByBody:
		col = "lower(body)"
	}

	if order == posts.OrderDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
