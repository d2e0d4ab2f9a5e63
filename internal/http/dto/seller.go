package dto

import (
	"time"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// SellerResponse es la vista pública de una solicitud de vendedor.
type SellerResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	CompanyName   string    `json:"company_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	CountryRegion string    `json:"country_region,omitempty"`
	StreetAddress string    `json:"street_address,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Document      string    `json:"document,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromSeller proyecta el dominio al contrato público.
func FromSeller(s *repository.Seller) SellerResponse {
	return SellerResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		CompanyName:   s.CompanyName,
		Email:         s.Email,
		CountryRegion: s.CountryRegion,
		StreetAddress: s.StreetAddress,
		PhoneNumber:   s.PhoneNumber,
		Document:      s.DocumentPath,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromSellers proyecta una lista de solicitudes.
func FromSellers(sellers []repository.Seller) []SellerResponse {
	out := make([]SellerResponse, 0, len(sellers))
	for i := range sellers {
		out = append(out, FromSeller(&sellers[i]))
	}
	return out
}
