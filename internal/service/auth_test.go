package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastellanos/tienda/internal/repo"
	"github.com/mcastellanos/tienda/internal/service/token"
)

func newAuthService(t *testing.T) (*AuthService, *token.Service) {
	t.Helper()

	db := newTestDB(t)
	tokens := token.New([]byte("test-jwt-secret"))
	svc := &AuthService{
		Repo:   &repo.GormRepo{DB: db},
		Tokens: tokens,
	}
	return svc, tokens
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, tokens := newAuthService(t)
	user := createUser(t, svc.Repo.DB, "a@x.com", "correct")

	result, err := svc.Login(context.Background(), "a@x.com", "correct")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, "a@x.com", result.Email)

	userID, err := tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	createUser(t, svc.Repo.DB, "a@x.com", "correct")

	result, err := svc.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	createUser(t, svc.Repo.DB, "a@x.com", "correct")

	result, err := svc.Login(context.Background(), "nobody@x.com", "correct")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	createUser(t, svc.Repo.DB, "a@x.com", "correct")

	_, errWrongPassword := svc.Login(context.Background(), "a@x.com", "wrong")
	_, errUnknownEmail := svc.Login(context.Background(), "nobody@x.com", "wrong")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}
