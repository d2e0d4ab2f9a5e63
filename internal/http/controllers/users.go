package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/telemart/internal/http/dto"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/http/helpers"
	"github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/http/services"
)

// UserController expone el perfil propio y la administración de usuarios.
type UserController struct {
	svc *services.UserService
}

// NewUserController arma el controller de usuarios.
func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

// Me maneja GET /api/users/me: el perfil del usuario autenticado.
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID := middlewares.GetUserID(r.Context())
	user, err := c.svc.Get(r.Context(), userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromUser(user))
}

// List maneja GET /api/users (admin).
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.svc.List(r.Context())
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromUsers(users))
}

// Get maneja GET /api/users/{id} (admin).
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, err := c.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromUser(user))
}

// Update maneja PATCH /api/users/{id} (admin).
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	user, err := c.svc.Update(r.Context(), chi.URLParam(r, "id"), req.FirstName, req.LastName, req.Role)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromUser(user))
}

// Delete maneja DELETE /api/users/{id} (admin).
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteNoContent(w)
}
