package post

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	domain "github.com/mehedi609/dev-social/internal/domain/post"

	"github.com/google/uuid"
)

// Service provides post use cases.
type Service struct {
	posts   domain.Repository
	users   authdomain.UserRepository
	nowFunc func() time.Time
}

// NewService constructs a post service.
func NewService(posts domain.Repository, users authdomain.UserRepository) *Service {
	return &Service{
		posts:   posts,
		users:   users,
		nowFunc: time.Now,
	}
}

// Create publishes a new post, denormalizing the author's name and avatar.
func (s *Service) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, authdomain.ValidationErrors{{Message: "Text is required"}}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.Post{
		ID:           uuid.NewString(),
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.AvatarURL,
		Likes:        []domain.Like{},
		Comments:     []domain.Comment{},
		CreatedAt:    s.nowFunc().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a single post by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.Get(ctx, id)
}

// Delete removes a post. Only the author may delete it.
func (s *Service) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return domain.ErrNotOwner
	}
	return s.posts.Delete(ctx, postID)
}

// Like records a like; a user may like a post at most once.
func (s *Service) Like(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, like := range p.Likes {
		if like.UserID == userID {
			return nil, domain.ErrAlreadyLiked
		}
	}

	like := domain.Like{UserID: userID, CreatedAt: s.nowFunc().UTC()}
	if err := s.posts.AddLike(ctx, postID, like); err != nil {
		return nil, err
	}

	p, err = s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes the caller's like from a post.
func (s *Service) Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked := false
	for _, like := range p.Likes {
		if like.UserID == userID {
			liked = true
			break
		}
	}
	if !liked {
		return nil, domain.ErrNotLiked
	}

	if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}

	p, err = s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment attaches a comment to a post.
func (s *Service) AddComment(ctx context.Context, userID, postID, text string) ([]domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, authdomain.ValidationErrors{{Message: "Text is required"}}
	}

	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:           uuid.NewString(),
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.AvatarURL,
		CreatedAt:    s.nowFunc().UTC(),
	}
	if err := s.posts.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment deletes a comment. Only the comment's author may remove it.
func (s *Service) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	var target *domain.Comment
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			target = &p.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrCommentNotFound
	}
	if target.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if err := s.posts.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}

	p, err = s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}
