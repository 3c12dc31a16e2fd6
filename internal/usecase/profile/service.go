package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	domain "github.com/mehedi609/dev-social/internal/domain/profile"
	"github.com/mehedi609/dev-social/internal/infrastructure/github"

	"github.com/google/uuid"
)

// GithubClient lists public repositories for a username.
type GithubClient interface {
	Repos(ctx context.Context, username string) ([]github.Repo, error)
}

// Service provides profile use cases.
type Service struct {
	profiles domain.Repository
	users    authdomain.UserRepository
	posts    PostRemover
	github   GithubClient
	nowFunc  func() time.Time
}

// PostRemover deletes all posts owned by a user; used when an account is
// deleted.
type PostRemover interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// NewService constructs a profile service.
func NewService(profiles domain.Repository, users authdomain.UserRepository, posts PostRemover, gh GithubClient) *Service {
	return &Service{
		profiles: profiles,
		users:    users,
		posts:    posts,
		github:   gh,
		nowFunc:  time.Now,
	}
}

// UpsertInput is the payload for creating or updating the caller's profile.
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// Upsert creates the caller's profile or replaces its mutable fields.
func (s *Service) Upsert(ctx context.Context, userID string, input UpsertInput) (*domain.Profile, error) {
	var verrs authdomain.ValidationErrors
	if strings.TrimSpace(input.Status) == "" {
		verrs = append(verrs, authdomain.FieldError{Message: "Status is required"})
	}
	skills := splitSkills(input.Skills)
	if len(skills) == 0 {
		verrs = append(verrs, authdomain.FieldError{Message: "Skills are required"})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	now := s.nowFunc().UTC()
	p := &domain.Profile{
		UserID:         userID,
		Company:        strings.TrimSpace(input.Company),
		Website:        strings.TrimSpace(input.Website),
		Location:       strings.TrimSpace(input.Location),
		Status:         strings.TrimSpace(input.Status),
		Skills:         skills,
		Bio:            strings.TrimSpace(input.Bio),
		GithubUsername: strings.TrimSpace(input.GithubUsername),
		Social: domain.Social{
			Youtube:   strings.TrimSpace(input.Youtube),
			Twitter:   strings.TrimSpace(input.Twitter),
			Facebook:  strings.TrimSpace(input.Facebook),
			Linkedin:  strings.TrimSpace(input.Linkedin),
			Instagram: strings.TrimSpace(input.Instagram),
		},
		UpdatedAt: now,
	}
	p.ID = uuid.NewString()
	p.CreatedAt = now

	return s.profiles.Upsert(ctx, p)
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// List returns all profiles.
func (s *Service) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

// GetByUserID returns the profile owned by the given user.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// DeleteAccount removes the caller's posts, profile and user record.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.posts.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	return s.users.Delete(ctx, userID)
}

// ExperienceInput is the payload for adding a work-history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience prepends a work-history entry to the caller's profile.
func (s *Service) AddExperience(ctx context.Context, userID string, input ExperienceInput) (*domain.Profile, error) {
	var verrs authdomain.ValidationErrors
	if strings.TrimSpace(input.Title) == "" {
		verrs = append(verrs, authdomain.FieldError{Message: "Title is required"})
	}
	if strings.TrimSpace(input.Company) == "" {
		verrs = append(verrs, authdomain.FieldError{Message: "Company is required"})
	}
	if input.From.IsZero() {
		verrs = append(verrs, authdomain.FieldError{Message: "From date is required"})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	exp := domain.Experience{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: strings.TrimSpace(input.Description),
	}
	return s.profiles.AddExperience(ctx, userID, exp)
}

// RemoveExperience deletes a work-history entry from the caller's profile.
func (s *Service) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	return s.profiles.RemoveExperience(ctx, userID, expID)
}

// EducationInput is the payload for adding an education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Service) AddEducation(ctx context.Context, userID string, input EducationInput) (*domain.Profile, error) {
	var verrs authdomain.ValidationErrors
	if strings.TrimSpace(input.School) == "" {
		verrs = append(verrs, authdomain.FieldError{Message: "School is required"})
	}
	if strings.TrimSpace(input.Degree) == "" {
		verrs = append(verrs, authdomain.FieldError{Message: "Degree is required"})
	}
	if strings.TrimSpace(input.FieldOfStudy) == "" {
		verrs = append(verrs, authdomain.FieldError{Message: "Field of study is required"})
	}
	if input.From.IsZero() {
		verrs = append(verrs, authdomain.FieldError{Message: "From date is required"})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	edu := domain.Education{
		ID:           uuid.NewString(),
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  strings.TrimSpace(input.Description),
	}
	return s.profiles.AddEducation(ctx, userID, edu)
}

// RemoveEducation deletes an education entry from the caller's profile.
func (s *Service) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	return s.profiles.RemoveEducation(ctx, userID, eduID)
}

// GithubRepos lists the recent public repos for a GitHub username.
func (s *Service) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	return s.github.Repos(ctx, username)
}

func splitSkills(raw string) []string {
	var skills []string
	for _, skill := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
