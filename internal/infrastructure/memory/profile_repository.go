package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	domain "github.com/mehedi609/dev-social/internal/domain/profile"
)

// ProfileRepository keeps profiles in process memory, joining owner
// name/avatar from the user repository on read.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile // keyed by user id
	users    *UserRepository
}

// NewProfileRepository constructs an empty repository backed by the given
// user repository for owner lookups.
func NewProfileRepository(users *UserRepository) *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]domain.Profile),
		users:    users,
	}
}

// Upsert creates or replaces the mutable fields of the user's profile.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	existing, ok := r.profiles[p.UserID]
	stored := *p
	if ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		stored.Experience = existing.Experience
		stored.Education = existing.Education
	} else {
		stored.Experience = []domain.Experience{}
		stored.Education = []domain.Education{}
	}
	r.profiles[stored.UserID] = stored
	r.mu.Unlock()

	return r.GetByUserID(ctx, p.UserID)
}

// GetByUserID returns the profile owned by the given user.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	p, ok := r.profiles[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return r.withOwner(ctx, p)
}

// List returns all profiles, newest first.
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	r.mu.RLock()
	all := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	result := make([]*domain.Profile, 0, len(all))
	for _, p := range all {
		joined, err := r.withOwner(ctx, p)
		if err != nil {
			return nil, err
		}
		result = append(result, joined)
	}
	return result, nil
}

// DeleteByUserID removes the user's profile.
func (r *ProfileRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

// AddExperience prepends a work-history entry.
func (r *ProfileRepository) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	r.mu.Lock()
	p, ok := r.profiles[userID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrProfileNotFound
	}
	p.Experience = append([]domain.Experience{exp}, p.Experience...)
	r.profiles[userID] = p
	r.mu.Unlock()

	return r.GetByUserID(ctx, userID)
}

// RemoveExperience deletes a work-history entry by id.
func (r *ProfileRepository) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	r.mu.Lock()
	p, ok := r.profiles[userID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrProfileNotFound
	}
	found := false
	kept := p.Experience[:0:0]
	for _, exp := range p.Experience {
		if exp.ID == expID {
			found = true
			continue
		}
		kept = append(kept, exp)
	}
	if !found {
		r.mu.Unlock()
		return nil, domain.ErrExperienceNotFound
	}
	p.Experience = kept
	r.profiles[userID] = p
	r.mu.Unlock()

	return r.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry.
func (r *ProfileRepository) AddEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	r.mu.Lock()
	p, ok := r.profiles[userID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrProfileNotFound
	}
	p.Education = append([]domain.Education{edu}, p.Education...)
	r.profiles[userID] = p
	r.mu.Unlock()

	return r.GetByUserID(ctx, userID)
}

// RemoveEducation deletes an education entry by id.
func (r *ProfileRepository) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	r.mu.Lock()
	p, ok := r.profiles[userID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrProfileNotFound
	}
	found := false
	kept := p.Education[:0:0]
	for _, edu := range p.Education {
		if edu.ID == eduID {
			found = true
			continue
		}
		kept = append(kept, edu)
	}
	if !found {
		r.mu.Unlock()
		return nil, domain.ErrEducationNotFound
	}
	p.Education = kept
	r.profiles[userID] = p
	r.mu.Unlock()

	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) withOwner(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	user, err := r.users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	p.UserName = user.Name
	p.UserAvatar = user.AvatarURL
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	return &p, nil
}
