package post

import "context"

// Repository defines persistence operations for posts.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error

	AddLike(ctx context.Context, postID string, like Like) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID string, comment Comment) error
	RemoveComment(ctx context.Context, postID, commentID string) error
}
