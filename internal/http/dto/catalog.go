package dto

import (
	"time"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Categorías
// ─────────────────────────────────────────────────────────────────────────────

// CreateCategoryRequest crea una categoría. Image es la ruta devuelta por el
// endpoint de uploads (o una URL externa).
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// UpdateCategoryRequest campos editables de una categoría.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

// CategoryResponse es la vista pública de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromCategory proyecta el dominio al contrato público.
func FromCategory(c *repository.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromCategories proyecta una lista de categorías.
func FromCategories(cats []repository.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, FromCategory(&cats[i]))
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Productos
// ─────────────────────────────────────────────────────────────────────────────

// CreateProductRequest crea un producto.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	CategoryID  string  `json:"category_id"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// UpdateProductRequest campos editables de un producto.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// ProductResponse es la vista pública de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Stock       int       `json:"stock"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromProduct proyecta el dominio al contrato público.
func FromProduct(p *repository.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Stock:       p.Stock,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProducts proyecta una lista de productos.
func FromProducts(products []repository.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos
// ─────────────────────────────────────────────────────────────────────────────

// CreateEventRequest crea un evento/promoción.
type CreateEventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Image       string     `json:"image,omitempty"`
}

// UpdateEventRequest campos editables de un evento.
type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Image       *string    `json:"image,omitempty"`
}

// EventResponse es la vista pública de un evento.
type EventResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FromEvent proyecta el dominio al contrato público.
func FromEvent(e *repository.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Name:        e.Name,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Image:       e.Image,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FromEvents proyecta una lista de eventos.
func FromEvents(events []repository.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, FromEvent(&events[i]))
	}
	return out
}
