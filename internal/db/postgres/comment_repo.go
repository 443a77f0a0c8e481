package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
	"Blogview/internal/core/reactions"
)

// CommentRepository is the PostgreSQL gateway for locally stored comments.
// It implements comments.Repository and reactions.CommentStore.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = "id, post_id, body, likes, liked_by, user_id, user_full_name"

// GetByID retrieves a local comment by id
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id = $1", id)

	comment, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListForPost returns a post's local comments ordered by id ascending
func (r *CommentRepository) ListForPost(ctx context.Context, postID int64) ([]comments.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = $1 ORDER BY id", postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	out := []comments.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		out = append(out, *comment)
	}
	return out, rows.Err()
}

// Create inserts a new comment, allocating its id from the single global
// counter in the same statement. The counter is global, not per post:
// comment ids stay unique across the whole system and bear no relation to
// the post they belong to.
func (r *CommentRepository) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, body, likes, liked_by, user_id, user_full_name)
		SELECT GREATEST($1, COALESCE(MAX(id), $1)) + 1, $2, $3, 0, '{}', $4, $5
		FROM comments
		RETURNING id
	`

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err := r.db.QueryRowContext(ctx, query,
			comments.MaxCatalogCommentID, comment.PostID, comment.Body,
			comment.AuthorID, comment.AuthorFullName,
		).Scan(&comment.ID)

		if err == nil {
			comment.Origin = posts.OriginLocal
			comment.Likes = 0
			comment.LikedBy = []int64{}
			return nil
		}
		if !isDuplicateKey(err) {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		lastErr = err
	}

	return fmt.Errorf("failed to allocate comment id after %d attempts: %w", createAttempts, lastErr)
}

// Update persists a body change
func (r *CommentRepository) Update(ctx context.Context, comment *comments.Comment) error {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"UPDATE comments SET body = $1, updated_at = NOW() WHERE id = $2 RETURNING id",
		comment.Body, comment.ID,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return comments.ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// Delete removes a local comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	err := r.db.QueryRowContext(ctx,
		"DELETE FROM comments WHERE id = $1 RETURNING id", id).Scan(&deleted)

	if err == sql.ErrNoRows {
		return comments.ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// DeleteForPost removes all local comments of a post. Deleting zero rows
// is fine; the cascade caller doesn't care whether the post had comments.
func (r *CommentRepository) DeleteForPost(ctx context.Context, postID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE post_id = $1", postID)
	if err != nil {
		return fmt.Errorf("failed to delete comments of post %d: %w", postID, err)
	}
	return nil
}

// ApplyLike performs the like toggle as one transaction: the row is
// locked, the like set and counter are recomputed together and written
// back in a single update.
func (r *CommentRepository) ApplyLike(ctx context.Context, commentID, actorID int64) (*reactions.CommentLikeResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin like tx: %w", err)
	}
	defer tx.Rollback()

	var postID int64
	var likes int
	var likedBy pq.Int64Array
	err = tx.QueryRowContext(ctx,
		"SELECT post_id, likes, liked_by FROM comments WHERE id = $1 FOR UPDATE",
		commentID,
	).Scan(&postID, &likes, &likedBy)

	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock comment for like: %w", err)
	}

	updated, newLikes, liked := reactions.ApplyCommentLike(likedBy, likes, actorID)

	_, err = tx.ExecContext(ctx,
		"UPDATE comments SET likes = $1, liked_by = $2, updated_at = NOW() WHERE id = $3",
		newLikes, pq.Array(updated), commentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to persist like: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit like: %w", err)
	}

	return &reactions.CommentLikeResult{
		CommentID:          commentID,
		PostID:             postID,
		Likes:              newLikes,
		LikedByCurrentUser: liked,
	}, nil
}

func scanComment(row rowScanner) (*comments.Comment, error) {
	var comment comments.Comment
	var likedBy pq.Int64Array

	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.Body, &comment.Likes,
		&likedBy, &comment.AuthorID, &comment.AuthorFullName,
	)
	if err != nil {
		return nil, err
	}

	comment.LikedBy = []int64(likedBy)
	comment.Origin = posts.OriginLocal
	return &comment, nil
}
