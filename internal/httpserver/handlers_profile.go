package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	profiledomain "github.com/mehedi609/dev-social/internal/domain/profile"
	"github.com/mehedi609/dev-social/internal/infrastructure/github"
	profileusecase "github.com/mehedi609/dev-social/internal/usecase/profile"
)

// handleProfile serves the /api/profile collection route: GET lists all
// profiles (public), POST creates/updates the caller's profile, DELETE
// removes the caller's account entirely.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profiles, err := s.profileService.List(r.Context())
		if err != nil {
			s.logger.Error("profile list failed", "error", err.Error())
			writeServerError(w)
			return
		}
		if profiles == nil {
			profiles = []*profiledomain.Profile{}
		}
		writeJSON(w, http.StatusOK, profiles)
	case http.MethodPost:
		s.requireAuth(s.handleProfileUpsert)(w, r)
	case http.MethodDelete:
		s.requireAuth(s.handleAccountDelete)(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) handleProfileUpsert(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var payload struct {
		Company        string `json:"company"`
		Website        string `json:"website"`
		Location       string `json:"location"`
		Status         string `json:"status"`
		Skills         string `json:"skills"`
		Bio            string `json:"bio"`
		GithubUsername string `json:"githubusername"`
		Youtube        string `json:"youtube"`
		Twitter        string `json:"twitter"`
		Facebook       string `json:"facebook"`
		Linkedin       string `json:"linkedin"`
		Instagram      string `json:"instagram"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	profile, err := s.profileService.Upsert(r.Context(), identity.UserID, profileusecase.UpsertInput{
		Company:        payload.Company,
		Website:        payload.Website,
		Location:       payload.Location,
		Status:         payload.Status,
		Skills:         payload.Skills,
		Bio:            payload.Bio,
		GithubUsername: payload.GithubUsername,
		Youtube:        payload.Youtube,
		Twitter:        payload.Twitter,
		Facebook:       payload.Facebook,
		Linkedin:       payload.Linkedin,
		Instagram:      payload.Instagram,
	})
	if err != nil {
		s.writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAccountDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := s.profileService.DeleteAccount(r.Context(), identity.UserID); err != nil {
		s.logger.Error("account delete failed", "error", err.Error())
		writeServerError(w)
		return
	}
	writeMsg(w, http.StatusOK, "User deleted")
}

// handleProfileSubroute dispatches /api/profile/... paths:
// me, user/{id}, experience[/{id}], education[/{id}], github/{username}.
func (s *Server) handleProfileSubroute(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/profile/"), "/")
	segments := strings.Split(remainder, "/")

	switch segments[0] {
	case "me":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		s.requireAuth(s.handleProfileMe)(w, r)
	case "user":
		if len(segments) != 2 || segments[1] == "" {
			writeMsg(w, http.StatusBadRequest, "user id required")
			return
		}
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		s.handleProfileByUserID(w, r, segments[1])
	case "experience":
		s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
			s.handleExperience(w, r, segments[1:])
		})(w, r)
	case "education":
		s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
			s.handleEducation(w, r, segments[1:])
		})(w, r)
	case "github":
		if len(segments) != 2 || segments[1] == "" {
			writeMsg(w, http.StatusBadRequest, "github username required")
			return
		}
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		s.handleGithubRepos(w, r, segments[1])
	default:
		writeMsg(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleProfileMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	profile, err := s.profileService.Me(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		s.logger.Error("profile lookup failed", "error", err.Error())
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleProfileByUserID(w http.ResponseWriter, r *http.Request, userID string) {
	profile, err := s.profileService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "Profile not found")
			return
		}
		s.logger.Error("profile lookup failed", "error", err.Error())
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleExperience(w http.ResponseWriter, r *http.Request, rest []string) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	switch {
	case len(rest) == 0 || rest[0] == "":
		if r.Method != http.MethodPut {
			writeMethodNotAllowed(w, http.MethodPut)
			return
		}

		var payload struct {
			Title       string `json:"title"`
			Company     string `json:"company"`
			Location    string `json:"location"`
			From        string `json:"from"`
			To          string `json:"to"`
			Current     bool   `json:"current"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		from, to, err := parseDateRange(payload.From, payload.To)
		if err != nil {
			writeValidationErrors(w, authdomain.ValidationErrors{{Message: err.Error()}})
			return
		}

		profile, err := s.profileService.AddExperience(r.Context(), identity.UserID, profileusecase.ExperienceInput{
			Title:       payload.Title,
			Company:     payload.Company,
			Location:    payload.Location,
			From:        from,
			To:          to,
			Current:     payload.Current,
			Description: payload.Description,
		})
		if err != nil {
			s.writeProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case len(rest) == 1:
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w, http.MethodDelete)
			return
		}
		profile, err := s.profileService.RemoveExperience(r.Context(), identity.UserID, rest[0])
		if err != nil {
			s.writeProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		writeMsg(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleEducation(w http.ResponseWriter, r *http.Request, rest []string) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	switch {
	case len(rest) == 0 || rest[0] == "":
		if r.Method != http.MethodPut {
			writeMethodNotAllowed(w, http.MethodPut)
			return
		}

		var payload struct {
			School       string `json:"school"`
			Degree       string `json:"degree"`
			FieldOfStudy string `json:"fieldofstudy"`
			From         string `json:"from"`
			To           string `json:"to"`
			Current      bool   `json:"current"`
			Description  string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		from, to, err := parseDateRange(payload.From, payload.To)
		if err != nil {
			writeValidationErrors(w, authdomain.ValidationErrors{{Message: err.Error()}})
			return
		}

		profile, err := s.profileService.AddEducation(r.Context(), identity.UserID, profileusecase.EducationInput{
			School:       payload.School,
			Degree:       payload.Degree,
			FieldOfStudy: payload.FieldOfStudy,
			From:         from,
			To:           to,
			Current:      payload.Current,
			Description:  payload.Description,
		})
		if err != nil {
			s.writeProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case len(rest) == 1:
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w, http.MethodDelete)
			return
		}
		profile, err := s.profileService.RemoveEducation(r.Context(), identity.UserID, rest[0])
		if err != nil {
			s.writeProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		writeMsg(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleGithubRepos(w http.ResponseWriter, r *http.Request, username string) {
	repos, err := s.profileService.GithubRepos(r.Context(), username)
	if err != nil {
		if errors.Is(err, github.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "No Github profile found")
			return
		}
		s.logger.Error("github repos lookup failed", "error", err.Error())
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) writeProfileError(w http.ResponseWriter, err error) {
	var verrs authdomain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeValidationErrors(w, verrs)
	case errors.Is(err, profiledomain.ErrProfileNotFound):
		writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
	case errors.Is(err, profiledomain.ErrExperienceNotFound):
		writeMsg(w, http.StatusNotFound, "Experience entry not found")
	case errors.Is(err, profiledomain.ErrEducationNotFound):
		writeMsg(w, http.StatusNotFound, "Education entry not found")
	default:
		s.logger.Error("profile operation failed", "error", err.Error())
		writeServerError(w)
	}
}

func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	var from time.Time
	if fromRaw != "" {
		parsed, err := parseDate(fromRaw)
		if err != nil {
			return time.Time{}, nil, err
		}
		from = parsed
	}

	var to *time.Time
	if toRaw != "" {
		parsed, err := parseDate(toRaw)
		if err != nil {
			return time.Time{}, nil, err
		}
		to = &parsed
	}
	return from, to, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid date %q", value)
}
