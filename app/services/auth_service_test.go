package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name: "Amine", Email: "amine@example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "supersecret", user.Password)

	loggedIn, token2, err := svc.Login(context.Background(), LoginInput{
		Email: "amine@example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := auth.ValidateToken(token2)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Amine", Email: "amine@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Name: "Imposter", Email: "amine@example.com", Password: "otherpassword",
	})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Amine", Email: "amine@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{
		Email: "amine@example.com", Password: "wrongwrong",
	})
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email: "nobody@example.com", Password: "whatever1",
	})
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Amine", Email: "amine@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(context.Background(), "amine@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = svc.ResetPassword(context.Background(), ResetInput{
		Token: token, Password: "brandnewpass",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{
		Email: "amine@example.com", Password: "brandnewpass",
	})
	assert.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{
		Email: "amine@example.com", Password: "supersecret",
	})
	assert.Error(t, err)
}

func TestPasswordResetUnknownEmailYieldsNoToken(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	token, err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestPasswordResetBadToken(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	err := svc.ResetPassword(context.Background(), ResetInput{
		Token: "not-a-token", Password: "brandnewpass",
	})
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}
