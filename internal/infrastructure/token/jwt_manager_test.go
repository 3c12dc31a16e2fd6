package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Roundtrip(t *testing.T) {
	m := NewJWTManager("super-secret", 10*time.Hour, "dev-social")

	tok, err := m.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidate_Expired(t *testing.T) {
	m := NewJWTManager("super-secret", -time.Second, "dev-social")

	tok, err := m.Generate("user-123")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	require.ErrorIs(t, err, authdomain.ErrTokenExpired)
}

func TestValidate_TamperedClaim(t *testing.T) {
	m := NewJWTManager("super-secret", time.Hour, "dev-social")

	tok, err := m.Generate("user-123")
	require.NoError(t, err)

	// Rewrite the user id inside the payload, keeping the original signature.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	tampered := strings.Replace(string(payload), "user-123", "user-999", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(tampered))

	_, err = m.Validate(strings.Join(parts, "."))
	require.ErrorIs(t, err, authdomain.ErrTokenSignatureInvalid)
}

func TestValidate_WrongSecret(t *testing.T) {
	minted := NewJWTManager("secret-a", time.Hour, "dev-social")
	verifier := NewJWTManager("secret-b", time.Hour, "dev-social")

	tok, err := minted.Generate("user-123")
	require.NoError(t, err)

	_, err = verifier.Validate(tok)
	require.ErrorIs(t, err, authdomain.ErrTokenSignatureInvalid)
}

func TestValidate_Malformed(t *testing.T) {
	m := NewJWTManager("super-secret", time.Hour, "dev-social")

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := m.Validate(input)
		assert.ErrorIs(t, err, authdomain.ErrTokenMalformed, "input %q", input)
	}
}

func TestValidate_MissingUserClaim(t *testing.T) {
	m := NewJWTManager("super-secret", time.Hour, "dev-social")

	tok, err := m.Generate("")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	require.ErrorIs(t, err, authdomain.ErrTokenInvalid)
}
