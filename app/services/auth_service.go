package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/auth"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/crypt"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/validate"
)

const resetTokenTTL = time.Hour

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the sign-in payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetInput carries a reset token and the replacement password.
type ResetInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// resetClaim is the encrypted payload inside a password-reset token.
type resetClaim struct {
	Email   string `json:"email"`
	Expires int64  `json:"expires"`
}

// AuthService handles account registration, login, and password resets.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account with a bcrypt-hashed password and returns
// the user together with a signed JWT.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, "", apperr.ValidationFields(errs)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", apperr.Validation("email", "The email is already registered.")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Save(ctx, &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh JWT.
// Unknown email and wrong password produce the same error so the endpoint
// does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, "", apperr.ValidationFields(errs)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, "", apperr.Validation("email", "Invalid credentials.")
	}
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, "", apperr.Validation("email", "Invalid credentials.")
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me loads the account behind a token's user id.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return s.users.Get(ctx, id)
}

// RequestPasswordReset issues an encrypted single-purpose token for the
// account. The token is returned for delivery by the caller; an unknown
// email yields the same success shape to avoid account probing.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			logger.WithCtx(ctx).Info("password reset requested for unknown email")
			return "", nil
		}
		return "", err
	}

	return crypt.EncryptJSON(resetClaim{
		Email:   email,
		Expires: time.Now().Add(resetTokenTTL).Unix(),
	})
}

// ResetPassword decrypts and checks the token, then replaces the
// account's password hash.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetInput) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return apperr.ValidationFields(errs)
	}

	var claim resetClaim
	if err := crypt.DecryptJSON(in.Token, &claim); err != nil {
		return apperr.Validation("token", "The reset token is invalid.")
	}
	if time.Now().Unix() > claim.Expires {
		return apperr.Validation("token", "The reset token has expired.")
	}

	user, err := s.users.GetByEmail(ctx, claim.Email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	user.Password = hash

	_, err = s.users.Save(ctx, user)
	return err
}
