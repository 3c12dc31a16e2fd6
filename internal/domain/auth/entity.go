package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("user already exists")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrTokenMalformed means the supplied token is not decodable as a JWT.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenExpired means the token signature is fine but its expiry passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignatureInvalid means the signature does not match the payload.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	// ErrTokenInvalid covers any other verification failure.
	ErrTokenInvalid = errors.New("token invalid")
)

// User models the credential entity persisted in storage.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}

// Identity is the request-scoped value derived from a verified token. It
// carries only the user id; resolving it to a full user is a downstream
// concern.
type Identity struct {
	UserID string
}

// FieldError is a single validation failure, serialized in the shape the
// web client reads.
type FieldError struct {
	Message string `json:"message"`
}

// ValidationErrors aggregates per-field validation failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return v[0].Message
}

// IsTokenError reports whether err belongs to the closed token-verification
// error set.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenSignatureInvalid) ||
		errors.Is(err, ErrTokenInvalid)
}
