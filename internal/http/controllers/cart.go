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

// CartController expone el carrito del usuario autenticado.
type CartController struct {
	svc *services.CartService
}

// NewCartController arma el controller de carrito.
func NewCartController(svc *services.CartService) *CartController {
	return &CartController{svc: svc}
}

// Get maneja GET /api/cart.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := c.svc.Get(r.Context(), middlewares.GetUserID(r.Context()))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCart(cart))
}

// AddItem maneja POST /api/cart/items.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if req.ProductID == "" {
		apperrors.WriteError(w, apperrors.ErrMissingFields.WithDetail("product_id es requerido"))
		return
	}

	cart, err := c.svc.AddItem(r.Context(), middlewares.GetUserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCart(cart))
}

// UpdateItem maneja PATCH /api/cart/items/{productID}.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCartItemRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	cart, err := c.svc.SetItemQuantity(r.Context(), middlewares.GetUserID(r.Context()), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCart(cart))
}

// RemoveItem maneja DELETE /api/cart/items/{productID}.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := c.svc.RemoveItem(r.Context(), middlewares.GetUserID(r.Context()), chi.URLParam(r, "productID"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCart(cart))
}

// Clear maneja DELETE /api/cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Clear(r.Context(), middlewares.GetUserID(r.Context())); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteNoContent(w)
}
