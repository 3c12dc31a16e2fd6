package token

import (
	"errors"
	"time"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	usecase "github.com/mehedi609/dev-social/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates JWT tokens.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	nowFunc    func() time.Time
}

// NewJWTManager constructs a manager with the provided secret and expiration.
func NewJWTManager(secret string, expiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
		nowFunc:    time.Now,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// UserClaim is the identity payload embedded in each token.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims represents token claims. The user id lives under a nested "user"
// object, which is the wire format the web client was built against.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT containing the user id.
func (m *JWTManager) Generate(userID string) (string, error) {
	now := m.nowFunc().UTC()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and verifies the token, returning the user id when valid.
// Failures map onto the closed token error set so callers can log the exact
// kind while keeping the external response coarse.
func (m *JWTManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.nowFunc))
	if err != nil {
		return "", classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return "", authdomain.ErrTokenInvalid
	}
	return claims.User.ID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return authdomain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return authdomain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authdomain.ErrTokenSignatureInvalid
	default:
		return authdomain.ErrTokenInvalid
	}
}
