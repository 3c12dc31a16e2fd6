package post

import (
	"errors"
	"time"
)

var (
	// ErrPostNotFound indicates a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound indicates a missing comment.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrAlreadyLiked signals a duplicate like by the same user.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked signals an unlike of a post the user never liked.
	ErrNotLiked = errors.New("post has not been liked")
	// ErrNotOwner signals a mutation attempted by a non-author.
	ErrNotOwner = errors.New("user not authorized")
)

// Like records a single user's like on a post.
type Like struct {
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a user comment on a post. Author name and avatar are
// denormalized at creation time, matching the post itself.
type Comment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post is a published post with its likes and comments.
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}
