package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	authusecase "github.com/mehedi609/dev-social/internal/usecase/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/api/users", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/api/auth", http.HandlerFunc(s.handleAuth))

	s.router.Handle("/api/profile", http.HandlerFunc(s.handleProfile))
	s.router.Handle("/api/profile/", http.HandlerFunc(s.handleProfileSubroute))

	authenticated := s.authMiddleware
	s.router.Handle("/api/posts", authenticated(http.HandlerFunc(s.handlePosts)))
	s.router.Handle("/api/posts/", authenticated(http.HandlerFunc(s.handlePostSubroute)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, err := s.authService.Register(r.Context(), authusecase.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		var verrs authdomain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeValidationErrors(w, verrs)
		case errors.Is(err, authdomain.ErrEmailExists):
			writeValidationErrors(w, authdomain.ValidationErrors{{Message: "User already exists"}})
		default:
			s.logger.Error("register failed", "error", err.Error())
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleAuth serves the /api/auth route: POST logs in, GET resolves the
// caller's token to their user record.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleLogin(w, r)
	case http.MethodGet:
		s.requireAuth(s.handleCurrentUser)(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			writeValidationErrors(w, authdomain.ValidationErrors{{Message: "Invalid credentials"}})
			return
		}
		s.logger.Error("login failed", "error", err.Error())
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	user, err := s.authService.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			// Token verified but the account no longer exists.
			writeMsg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		s.logger.Error("current user lookup failed", "error", err.Error())
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
