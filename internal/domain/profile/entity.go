package profile

import (
	"errors"
	"time"
)

var (
	// ErrProfileNotFound indicates no profile exists for the requested user.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrExperienceNotFound indicates a missing experience entry.
	ErrExperienceNotFound = errors.New("experience entry not found")
	// ErrEducationNotFound indicates a missing education entry.
	ErrEducationNotFound = errors.New("education entry not found")
)

// Social groups optional social-network links.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a single work-history entry.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a single education-history entry.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is the public-facing profile attached to a user. UserName and
// UserAvatar are joined from the owning user on read.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user"`
	UserName       string       `json:"name"`
	UserAvatar     string       `json:"avatar"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
