package postgres

import (
	"context"
	"errors"

	domain "github.com/mehedi609/dev-social/internal/domain/profile"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository persists profiles in PostgreSQL.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs a repository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Upsert creates the user's profile or replaces its mutable fields, keeping
// existing experience/education rows.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	const query = `
INSERT INTO profiles (
	id, user_id, company, website, location, status, skills, bio, github_username,
	social_youtube, social_twitter, social_facebook, social_linkedin, social_instagram,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (user_id) DO UPDATE SET
	company = EXCLUDED.company,
	website = EXCLUDED.website,
	location = EXCLUDED.location,
	status = EXCLUDED.status,
	skills = EXCLUDED.skills,
	bio = EXCLUDED.bio,
	github_username = EXCLUDED.github_username,
	social_youtube = EXCLUDED.social_youtube,
	social_twitter = EXCLUDED.social_twitter,
	social_facebook = EXCLUDED.social_facebook,
	social_linkedin = EXCLUDED.social_linkedin,
	social_instagram = EXCLUDED.social_instagram,
	updated_at = EXCLUDED.updated_at
`
	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		p.Skills,
		p.Bio,
		p.GithubUsername,
		p.Social.Youtube,
		p.Social.Twitter,
		p.Social.Facebook,
		p.Social.Linkedin,
		p.Social.Instagram,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, p.UserID)
}

// GetByUserID returns the profile owned by the given user, with the owner's
// name and avatar joined in and subresources loaded.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const query = `
SELECT p.id, p.user_id, u.name, u.avatar_url, p.company, p.website, p.location,
	p.status, p.skills, p.bio, p.github_username,
	p.social_youtube, p.social_twitter, p.social_facebook, p.social_linkedin, p.social_instagram,
	p.created_at, p.updated_at
FROM profiles p
JOIN users u ON u.id = p.user_id
WHERE p.user_id = $1
`
	row := r.pool.QueryRow(ctx, query, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	if err := r.loadSubresources(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all profiles with their subresources.
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	const query = `
SELECT p.id, p.user_id, u.name, u.avatar_url, p.company, p.website, p.location,
	p.status, p.skills, p.bio, p.github_username,
	p.social_youtube, p.social_twitter, p.social_facebook, p.social_linkedin, p.social_instagram,
	p.created_at, p.updated_at
FROM profiles p
JOIN users u ON u.id = p.user_id
ORDER BY p.created_at DESC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if err := r.loadSubresources(ctx, p); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// DeleteByUserID removes the user's profile and, via cascade, its
// experience/education rows.
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// AddExperience inserts a work-history entry and returns the updated profile.
func (r *ProfileRepository) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	profileID, err := r.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO profile_experience (id, profile_id, title, company, location, date_from, date_to, is_current, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
`
	_, err = r.pool.Exec(ctx, query,
		exp.ID, profileID, exp.Title, exp.Company, exp.Location,
		exp.From, exp.To, exp.Current, exp.Description,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

// RemoveExperience deletes a work-history entry and returns the updated profile.
func (r *ProfileRepository) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	profileID, err := r.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ct, err := r.pool.Exec(ctx, `DELETE FROM profile_experience WHERE id = $1 AND profile_id = $2`, expID, profileID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrExperienceNotFound
	}
	return r.GetByUserID(ctx, userID)
}

// AddEducation inserts an education entry and returns the updated profile.
func (r *ProfileRepository) AddEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	profileID, err := r.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO profile_education (id, profile_id, school, degree, field_of_study, date_from, date_to, is_current, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
`
	_, err = r.pool.Exec(ctx, query,
		edu.ID, profileID, edu.School, edu.Degree, edu.FieldOfStudy,
		edu.From, edu.To, edu.Current, edu.Description,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

// RemoveEducation deletes an education entry and returns the updated profile.
func (r *ProfileRepository) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	profileID, err := r.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ct, err := r.pool.Exec(ctx, `DELETE FROM profile_education WHERE id = $1 AND profile_id = $2`, eduID, profileID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrEducationNotFound
	}
	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) profileID(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrProfileNotFound
		}
		return "", err
	}
	return id, nil
}

func (r *ProfileRepository) loadSubresources(ctx context.Context, p *domain.Profile) error {
	const expQuery = `
SELECT id, title, company, location, date_from, date_to, is_current, description
FROM profile_experience
WHERE profile_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, expQuery, p.ID)
	if err != nil {
		return err
	}
	p.Experience = []domain.Experience{}
	for rows.Next() {
		var exp domain.Experience
		if err := rows.Scan(&exp.ID, &exp.Title, &exp.Company, &exp.Location, &exp.From, &exp.To, &exp.Current, &exp.Description); err != nil {
			rows.Close()
			return err
		}
		p.Experience = append(p.Experience, exp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const eduQuery = `
SELECT id, school, degree, field_of_study, date_from, date_to, is_current, description
FROM profile_education
WHERE profile_id = $1
ORDER BY created_at DESC
`
	rows, err = r.pool.Query(ctx, eduQuery, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	p.Education = []domain.Education{}
	for rows.Next() {
		var edu domain.Education
		if err := rows.Scan(&edu.ID, &edu.School, &edu.Degree, &edu.FieldOfStudy, &edu.From, &edu.To, &edu.Current, &edu.Description); err != nil {
			return err
		}
		p.Education = append(p.Education, edu)
	}
	return rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.UserName,
		&p.UserAvatar,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Status,
		&p.Skills,
		&p.Bio,
		&p.GithubUsername,
		&p.Social.Youtube,
		&p.Social.Twitter,
		&p.Social.Facebook,
		&p.Social.Linkedin,
		&p.Social.Instagram,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
