package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/middleware"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
)

// AuthController exposes registration, login and password resets.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, token, err := c.auth.Register(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, map[string]any{"user": user, "token": token})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, token, err := c.auth.Login(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]any{"user": user, "token": token})
}

// Me returns the account behind the presented token.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	user, err := c.auth.Me(r.Context(), claims.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}

// ForgotPassword issues a reset token. The response shape is identical
// whether or not the email exists.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	token, err := c.auth.RequestPasswordReset(r.Context(), in.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}

	data := map[string]any{"message": "If the account exists, a reset token was issued."}
	if token != "" {
		data["token"] = token
	}
	response.Success(w, data)
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in services.ResetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := c.auth.ResetPassword(r.Context(), in); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Password updated."})
}
