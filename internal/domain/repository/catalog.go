package repository

import (
	"context"
	"time"
)

// Category agrupa productos. La imagen es opcional y vive en el artifact store.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCategoryInput datos para crear una categoría.
type CreateCategoryInput struct {
	UserID string
	Name   string
	Image  string
}

// UpdateCategoryInput campos editables de una categoría.
type UpdateCategoryInput struct {
	Name  *string
	Image *string
}

// CategoryRepository define la persistencia de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, input CreateCategoryInput) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	ListByUser(ctx context.Context, userID string) ([]Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error)
	Delete(ctx context.Context, id string) error
}

// Product es un producto publicado por un seller.
type Product struct {
	ID          string
	UserID      string
	CategoryID  string
	Name        string
	Stock       int
	Price       float64
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	UserID      string
	CategoryID  string
	Name        string
	Stock       int
	Price       float64
	Description string
	Image       string
}

// UpdateProductInput campos editables de un producto.
type UpdateProductInput struct {
	Name        *string
	CategoryID  *string
	Stock       *int
	Price       *float64
	Description *string
	Image       *string
}

// ProductRepository define la persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	ListByUser(ctx context.Context, userID string) ([]Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

// Event es un evento/promoción del shop.
type Event struct {
	ID          string
	UserID      string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEventInput datos para crear un evento.
type CreateEventInput struct {
	UserID      string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Image       string
}

// UpdateEventInput campos editables de un evento.
type UpdateEventInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Image       *string
}

// EventRepository define la persistencia de eventos.
type EventRepository interface {
	Create(ctx context.Context, input CreateEventInput) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id string, input UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, id string) error
}
