package repository

import (
	"context"
	"time"
)

// SellerStatus es el estado de una solicitud de seller.
type SellerStatus string

const (
	SellerPending  SellerStatus = "pending"
	SellerApproved SellerStatus = "approved"
	SellerRejected SellerStatus = "rejected"
)

// Valid reporta si s es un estado conocido.
func (s SellerStatus) Valid() bool {
	switch s {
	case SellerPending, SellerApproved, SellerRejected:
		return true
	}
	return false
}

// Seller es una solicitud de cuenta de vendedor. A lo sumo una por usuario
// (unicidad por UserID); nace pending y un operador la resuelve una vez.
type Seller struct {
	ID            string
	UserID        string
	Name          string
	CompanyName   string
	Email         string
	CountryRegion string
	StreetAddress string
	PhoneNumber   string
	DocumentPath  string // referencia al documento subido; puede estar vacía
	Status        SellerStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateSellerInput contiene los datos de registro de un seller.
type CreateSellerInput struct {
	UserID        string
	Name          string
	CompanyName   string
	Email         string
	CountryRegion string
	StreetAddress string
	PhoneNumber   string
	DocumentPath  string
}

// SellerRepository define la persistencia de solicitudes de seller.
type SellerRepository interface {
	// Create registra una solicitud pending. ErrConflict si el usuario ya tiene una.
	Create(ctx context.Context, input CreateSellerInput) (*Seller, error)

	// GetByID busca por ID. ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Seller, error)

	// GetByUserID busca la solicitud de un usuario. ErrNotFound si no existe.
	GetByUserID(ctx context.Context, userID string) (*Seller, error)

	// List retorna todas las solicitudes.
	List(ctx context.Context) ([]Seller, error)

	// UpdateStatus cambia el estado. ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, id string, status SellerStatus) error

	// Delete elimina la solicitud (rama reject). ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
