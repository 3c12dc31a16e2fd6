package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/mehedi609/dev-social/internal/domain/post"
)

// PostRepository keeps posts in process memory.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]domain.Post
}

// NewPostRepository constructs an empty repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]domain.Post)}
}

// Create inserts a new post record.
func (r *PostRepository) Create(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	if stored.Likes == nil {
		stored.Likes = []domain.Like{}
	}
	if stored.Comments == nil {
		stored.Comments = []domain.Comment{}
	}
	r.posts[stored.ID] = stored
	return nil
}

// Get retrieves a post by id.
func (r *PostRepository) Get(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	copy := p
	copy.Likes = append([]domain.Like{}, p.Likes...)
	copy.Comments = append([]domain.Comment{}, p.Comments...)
	return &copy, nil
}

// List returns all posts, newest first.
func (r *PostRepository) List(_ context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		copy := p
		copy.Likes = append([]domain.Like{}, p.Likes...)
		copy.Comments = append([]domain.Comment{}, p.Comments...)
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Delete removes a post by id.
func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// DeleteByUserID removes every post owned by the given user.
func (r *PostRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

// AddLike records a like on a post.
func (r *PostRepository) AddLike(_ context.Context, postID string, like domain.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	for _, existing := range p.Likes {
		if existing.UserID == like.UserID {
			return domain.ErrAlreadyLiked
		}
	}
	p.Likes = append([]domain.Like{like}, p.Likes...)
	r.posts[postID] = p
	return nil
}

// RemoveLike removes a user's like from a post.
func (r *PostRepository) RemoveLike(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	kept := p.Likes[:0:0]
	found := false
	for _, like := range p.Likes {
		if like.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, like)
	}
	if !found {
		return domain.ErrNotLiked
	}
	p.Likes = kept
	r.posts[postID] = p
	return nil
}

// AddComment attaches a comment to a post.
func (r *PostRepository) AddComment(_ context.Context, postID string, comment domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Comments = append([]domain.Comment{comment}, p.Comments...)
	r.posts[postID] = p
	return nil
}

// RemoveComment deletes a comment from a post.
func (r *PostRepository) RemoveComment(_ context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	kept := p.Comments[:0:0]
	found := false
	for _, c := range p.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domain.ErrCommentNotFound
	}
	p.Comments = kept
	r.posts[postID] = p
	return nil
}
