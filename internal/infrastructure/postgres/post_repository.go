package postgres

import (
	"context"
	"errors"

	domain "github.com/mehedi609/dev-social/internal/domain/post"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository persists posts in PostgreSQL.
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository constructs a repository.
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts a new post record.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	const query = `
INSERT INTO posts (id, user_id, text, author_name, author_avatar, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Text,
		p.AuthorName,
		p.AuthorAvatar,
		p.CreatedAt,
	)
	return err
}

// Get retrieves a post by id with its likes and comments.
func (r *PostRepository) Get(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
SELECT id, user_id, text, author_name, author_avatar, created_at
FROM posts WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)

	var p domain.Post
	err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.AuthorName, &p.AuthorAvatar, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	if err := r.loadReactions(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all posts, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	const query = `
SELECT id, user_id, text, author_name, author_avatar, created_at
FROM posts
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.AuthorName, &p.AuthorAvatar, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range posts {
		if err := r.loadReactions(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Delete removes a post by id.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeleteByUserID removes every post owned by the given user.
func (r *PostRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	return err
}

// AddLike records a like on a post.
func (r *PostRepository) AddLike(ctx context.Context, postID string, like domain.Like) error {
	const query = `
INSERT INTO post_likes (post_id, user_id, created_at)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, query, postID, like.UserID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// RemoveLike removes a user's like from a post.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotLiked
	}
	return nil
}

// AddComment attaches a comment to a post.
func (r *PostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) error {
	const query = `
INSERT INTO post_comments (id, post_id, user_id, text, author_name, author_avatar, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		postID,
		comment.UserID,
		comment.Text,
		comment.AuthorName,
		comment.AuthorAvatar,
		comment.CreatedAt,
	)
	return err
}

// RemoveComment deletes a comment from a post.
func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM post_comments WHERE id = $1 AND post_id = $2`, commentID, postID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *PostRepository) loadReactions(ctx context.Context, p *domain.Post) error {
	likeRows, err := r.pool.Query(ctx, `
SELECT user_id, created_at FROM post_likes WHERE post_id = $1 ORDER BY created_at DESC
`, p.ID)
	if err != nil {
		return err
	}
	p.Likes = []domain.Like{}
	for likeRows.Next() {
		var like domain.Like
		if err := likeRows.Scan(&like.UserID, &like.CreatedAt); err != nil {
			likeRows.Close()
			return err
		}
		p.Likes = append(p.Likes, like)
	}
	likeRows.Close()
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := r.pool.Query(ctx, `
SELECT id, user_id, text, author_name, author_avatar, created_at
FROM post_comments WHERE post_id = $1 ORDER BY created_at DESC
`, p.ID)
	if err != nil {
		return err
	}
	defer commentRows.Close()
	p.Comments = []domain.Comment{}
	for commentRows.Next() {
		var c domain.Comment
		if err := commentRows.Scan(&c.ID, &c.UserID, &c.Text, &c.AuthorName, &c.AuthorAvatar, &c.CreatedAt); err != nil {
			return err
		}
		p.Comments = append(p.Comments, c)
	}
	return commentRows.Err()
}
