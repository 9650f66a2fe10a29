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

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

func (c *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.GetAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, users)
}

func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}

	user, err := c.users.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if user == nil {
		response.Error(w, apperr.NewNotFound("User not found"))
		return
	}
	response.OK(w, user)
}

func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input models.CreateUserInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	user, err := c.users.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user created", "user_id", user.ID)
	response.Created(w, user)
}

// UpdateUser changes the caller's own name fields. Updating another
// user's record is forbidden regardless of token validity.
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}

	subject, _ := auth.SubjectFromCtx(r.Context())
	if subject != id {
		response.Error(w, apperr.NewForbidden("No permission"))
		return
	}

	var input models.UpdateUserInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	user, err := c.users.Update(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	if user == nil {
		response.Error(w, apperr.NewNotFound("User not found"))
		return
	}
	response.OK(w, user)
}

func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}

	deleted, err := c.users.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, deleted)
}
