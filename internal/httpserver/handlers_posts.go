package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	postdomain "github.com/mehedi609/dev-social/internal/domain/post"
)

// handlePosts serves the /api/posts collection route. The gate already ran;
// every request here carries a verified identity.
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	switch r.Method {
	case http.MethodGet:
		posts, err := s.postService.List(r.Context())
		if err != nil {
			s.logger.Error("post list failed", "error", err.Error())
			writeServerError(w)
			return
		}
		if posts == nil {
			posts = []*postdomain.Post{}
		}
		writeJSON(w, http.StatusOK, posts)
	case http.MethodPost:
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		created, err := s.postService.Create(r.Context(), identity.UserID, payload.Text)
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, created)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handlePostSubroute dispatches /api/posts/... paths:
// {id}, like/{id}, unlike/{id}, comment/{id}[/{comment_id}].
func (s *Server) handlePostSubroute(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/posts/"), "/")
	segments := strings.Split(remainder, "/")

	switch segments[0] {
	case "":
		writeMsg(w, http.StatusBadRequest, "post id required")
	case "like":
		if len(segments) != 2 || segments[1] == "" {
			writeMsg(w, http.StatusBadRequest, "post id required")
			return
		}
		if r.Method != http.MethodPut {
			writeMethodNotAllowed(w, http.MethodPut)
			return
		}
		likes, err := s.postService.Like(r.Context(), identity.UserID, segments[1])
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, likes)
	case "unlike":
		if len(segments) != 2 || segments[1] == "" {
			writeMsg(w, http.StatusBadRequest, "post id required")
			return
		}
		if r.Method != http.MethodPut {
			writeMethodNotAllowed(w, http.MethodPut)
			return
		}
		likes, err := s.postService.Unlike(r.Context(), identity.UserID, segments[1])
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, likes)
	case "comment":
		s.handleComments(w, r, identity, segments[1:])
	default:
		s.handlePostByID(w, r, identity, segments)
	}
}

func (s *Server) handlePostByID(w http.ResponseWriter, r *http.Request, identity authdomain.Identity, segments []string) {
	if len(segments) != 1 {
		writeMsg(w, http.StatusNotFound, "resource not found")
		return
	}
	postID := segments[0]

	switch r.Method {
	case http.MethodGet:
		p, err := s.postService.Get(r.Context(), postID)
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := s.postService.Delete(r.Context(), identity.UserID, postID); err != nil {
			s.writePostError(w, err)
			return
		}
		writeMsg(w, http.StatusOK, "Post removed")
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request, identity authdomain.Identity, segments []string) {
	switch {
	case len(segments) == 1 && segments[0] != "":
		if r.Method != http.MethodPut {
			writeMethodNotAllowed(w, http.MethodPut)
			return
		}

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeMsg(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		comments, err := s.postService.AddComment(r.Context(), identity.UserID, segments[0], payload.Text)
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	case len(segments) == 2 && segments[0] != "" && segments[1] != "":
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w, http.MethodDelete)
			return
		}
		comments, err := s.postService.RemoveComment(r.Context(), identity.UserID, segments[0], segments[1])
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	default:
		writeMsg(w, http.StatusBadRequest, "post id required")
	}
}

func (s *Server) writePostError(w http.ResponseWriter, err error) {
	var verrs authdomain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeValidationErrors(w, verrs)
	case errors.Is(err, postdomain.ErrPostNotFound):
		writeMsg(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, postdomain.ErrCommentNotFound):
		writeMsg(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, postdomain.ErrAlreadyLiked):
		writeMsg(w, http.StatusBadRequest, "Post already liked")
	case errors.Is(err, postdomain.ErrNotLiked):
		writeMsg(w, http.StatusBadRequest, "Post has not yet been liked")
	case errors.Is(err, postdomain.ErrNotOwner):
		writeMsg(w, http.StatusUnauthorized, "User not authorized")
	default:
		s.logger.Error("post operation failed", "error", err.Error())
		writeServerError(w)
	}
}
