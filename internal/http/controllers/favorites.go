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

// FavoriteController expone la lista de favoritos del usuario autenticado.
type FavoriteController struct {
	svc *services.FavoriteService
}

// NewFavoriteController arma el controller de favoritos.
func NewFavoriteController(svc *services.FavoriteService) *FavoriteController {
	return &FavoriteController{svc: svc}
}

// Add maneja POST /api/favorites.
func (c *FavoriteController) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFavoriteRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if req.ProductID == "" {
		apperrors.WriteError(w, apperrors.ErrMissingFields.WithDetail("product_id es requerido"))
		return
	}

	fav, err := c.svc.Add(r.Context(), middlewares.GetUserID(r.Context()), req.ProductID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.FromFavorite(fav))
}

// List maneja GET /api/favorites.
func (c *FavoriteController) List(w http.ResponseWriter, r *http.Request) {
	favs, err := c.svc.List(r.Context(), middlewares.GetUserID(r.Context()))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromFavorites(favs))
}

// Remove maneja DELETE /api/favorites/{productID}.
func (c *FavoriteController) Remove(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Remove(r.Context(), middlewares.GetUserID(r.Context()), chi.URLParam(r, "productID")); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteNoContent(w)
}
