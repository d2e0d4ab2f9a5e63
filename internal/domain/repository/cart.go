package repository

import (
	"context"
	"time"
)

// CartItem es una línea del carrito. Price es un snapshot del precio del
// producto al momento de agregarlo, no se actualiza si el producto cambia.
type CartItem struct {
	ProductID string
	Quantity  int
	Price     float64
}

// Cart es el carrito de un usuario. Uno por usuario (unicidad por UserID).
type Cart struct {
	ID        string
	UserID    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartRepository define la persistencia de carritos.
type CartRepository interface {
	// GetByUserID retorna el carrito del usuario. ErrNotFound si nunca agregó items.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Save crea o reemplaza el carrito completo del usuario.
	// El carrito es un agregado chico: reescribirlo entero es más simple que
	// mutar líneas individuales y alcanza para este volumen.
	Save(ctx context.Context, cart *Cart) (*Cart, error)
}

// Favorite marca un producto como favorito de un usuario. Par (user, product) único.
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	CreatedAt time.Time
}

// FavoriteRepository define la persistencia de favoritos.
type FavoriteRepository interface {
	// Create agrega un favorito. ErrConflict si el par ya existe.
	Create(ctx context.Context, userID, productID string) (*Favorite, error)

	// GetByUserAndProduct busca un favorito puntual. ErrNotFound si no existe.
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*Favorite, error)

	// ListByUser retorna los favoritos de un usuario.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)

	// Delete elimina un favorito por ID. ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
