package profile

import "context"

// Repository defines persistence operations for profiles and their
// experience/education subresources.
type Repository interface {
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, userID string, exp Experience) (*Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*Profile, error)
	AddEducation(ctx context.Context, userID string, edu Education) (*Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*Profile, error)
}
