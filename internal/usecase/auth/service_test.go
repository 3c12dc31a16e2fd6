package auth_test

import (
	"context"
	"testing"
	"time"

	domain "github.com/mehedi609/dev-social/internal/domain/auth"
	"github.com/mehedi609/dev-social/internal/infrastructure/memory"
	"github.com/mehedi609/dev-social/internal/infrastructure/token"
	authusecase "github.com/mehedi609/dev-social/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*authusecase.Service, *token.JWTManager) {
	tokens := token.NewJWTManager("test-secret", 10*time.Hour, "dev-social")
	return authusecase.NewService(memory.NewUserRepository(), tokens), tokens
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newService()

	tok, err := svc.Register(ctx, authusecase.RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tokens.Validate(tok)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.Name)
	assert.NotEmpty(t, user.AvatarURL)
	assert.Empty(t, user.PasswordHash, "password hash must never leave the service")
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Register(ctx, authusecase.RegisterInput{
		Name:     " ",
		Email:    "not-an-email",
		Password: "short",
	})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	input := authusecase.RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newService()

	_, err := svc.Register(ctx, authusecase.RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	tok, err := svc.Login(ctx, domain.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = tokens.Validate(tok)
	require.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Register(ctx, authusecase.RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	tok, err := svc.Login(ctx, domain.Credentials{Email: "a@x.com", Password: "wrong-password"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, tok)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Login(ctx, domain.Credentials{Email: "nobody@x.com", Password: "secret1"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
