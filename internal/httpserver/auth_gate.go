package httpserver

import (
	"context"
	"net/http"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
)

// TokenHeader is the header carrying the bearer token on protected requests.
const TokenHeader = "x-auth-token"

type ctxKeyIdentity struct{}

// authMiddleware is the authentication gate placed before every protected
// handler. It verifies the token and attaches the resulting identity to the
// request context; it never touches storage. All verification failures look
// identical to the caller — the precise kind goes to the log only.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		userID, err := s.tokens.Validate(token)
		if err != nil {
			s.logger.Warn("token rejected",
				"path", r.URL.Path,
				"reason", err.Error(),
			)
			writeMsg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyIdentity{}, authdomain.Identity{UserID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth adapts the gate for use on individual handler functions where
// only some methods of a route are protected.
func (s *Server) requireAuth(h http.HandlerFunc) http.HandlerFunc {
	protected := s.authMiddleware(h)
	return func(w http.ResponseWriter, r *http.Request) {
		protected.ServeHTTP(w, r)
	}
}

func identityFromContext(ctx context.Context) (authdomain.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity{}).(authdomain.Identity)
	return identity, ok
}
