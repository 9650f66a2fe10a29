// Package controllers translates HTTP requests into repository calls and
// enforces resource ownership. Handlers stay thin: decode, authorize,
// delegate, respond in the standard envelope.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type AuthController struct {
	users *repositories.UserRepository
}

func NewAuthController(users *repositories.UserRepository) *AuthController {
	return &AuthController{users: users}
}

// Login verifies credentials and issues a one-hour access token. Unknown
// email and wrong password produce the identical 400 — the credentials
// lookup never tells them apart and neither do we.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	user, err := c.users.GetByCredentials(r.Context(), input.Email, input.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	if user == nil {
		response.Error(w, apperr.NewBadRequest("Invalid email or password"))
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		response.Error(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("login", "user_id", user.ID)
	response.OK(w, map[string]string{"accessToken": token})
}
