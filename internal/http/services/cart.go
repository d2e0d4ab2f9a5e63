package services

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// CartDeps son las dependencias del servicio de carrito.
type CartDeps struct {
	Carts    repository.CartRepository
	Products repository.ProductRepository
}

// CartService mantiene el carrito único de cada usuario. El agregado completo
// se reescribe en cada mutación.
type CartService struct {
	deps CartDeps
}

// NewCartService arma el servicio de carrito.
func NewCartService(deps CartDeps) *CartService {
	return &CartService{deps: deps}
}

// Get retorna el carrito del usuario. Un usuario que nunca agregó nada
// recibe un carrito vacío, no un 404.
func (s *CartService) Get(ctx context.Context, userID string) (*repository.Cart, error) {
	cart, err := s.deps.Carts.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return &repository.Cart{UserID: userID, Items: []repository.CartItem{}}, nil
		}
		return nil, fmt.Errorf("cart: get: %w", err)
	}
	return cart, nil
}

// AddItem agrega un producto al carrito o suma cantidad a la línea existente.
// El precio se congela al agregar: cambios posteriores del producto no lo tocan.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*repository.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidParameter.WithDetail("quantity debe ser mayor a cero")
	}

	product, err := s.deps.Products.GetByID(ctx, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("cart: lookup product: %w", err)
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, repository.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	saved, err := s.deps.Carts.Save(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}

	logger.From(ctx).Info("cart item added",
		logger.Layer("service"), logger.Op("cart.add_item"),
		logger.UserID(userID), logger.ProductID(productID), logger.Int("quantity", quantity))
	return saved, nil
}

// SetItemQuantity fija la cantidad de una línea. Cantidad cero la elimina.
func (s *CartService) SetItemQuantity(ctx context.Context, userID, productID string, quantity int) (*repository.Cart, error) {
	if quantity < 0 {
		return nil, apperrors.ErrInvalidParameter.WithDetail("quantity no puede ser negativa")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrNotFound.WithDetail("El producto no está en el carrito.")
	}

	if quantity == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	saved, err := s.deps.Carts.Save(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return saved, nil
}

// RemoveItem saca una línea del carrito.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*repository.Cart, error) {
	return s.SetItemQuantity(ctx, userID, productID, 0)
}

// Clear vacía el carrito del usuario.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	cart.Items = nil
	if _, err := s.deps.Carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return nil
}
