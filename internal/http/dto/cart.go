package dto

import (
	"time"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// AddCartItemRequest agrega un producto al carrito (o suma cantidad).
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest fija la cantidad de una línea. Cero la elimina.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse es una línea del carrito. Price es el snapshot tomado al
// agregar el producto.
type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResponse es el carrito completo de un usuario.
type CartResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// FromCart proyecta el carrito al contrato público, computando subtotales.
func FromCart(c *repository.Cart) CartResponse {
	resp := CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     make([]CartItemResponse, 0, len(c.Items)),
		UpdatedAt: c.UpdatedAt,
	}
	for _, it := range c.Items {
		sub := it.Price * float64(it.Quantity)
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  sub,
		})
		resp.Total += sub
	}
	return resp
}

// AddFavoriteRequest marca un producto como favorito.
type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// FavoriteResponse es un favorito de un usuario.
type FavoriteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FromFavorite proyecta el dominio al contrato público.
func FromFavorite(f *repository.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
		CreatedAt: f.CreatedAt,
	}
}

// FromFavorites proyecta una lista de favoritos.
func FromFavorites(favs []repository.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favs))
	for i := range favs {
		out = append(out, FromFavorite(&favs[i]))
	}
	return out
}

// UploadResponse es el resultado de subir un archivo al artifact store.
type UploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
