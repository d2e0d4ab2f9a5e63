package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dropDatabas3/telemart/internal/approval"
	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// SellerDeps son las dependencias del servicio de vendedores.
type SellerDeps struct {
	Sellers   repository.SellerRepository
	Artifacts *artifacts.Store
	Approval  *approval.Service
}

// SellerService registra solicitudes de vendedor y las expone para el admin.
type SellerService struct {
	deps SellerDeps
}

// NewSellerService arma el servicio de vendedores.
func NewSellerService(deps SellerDeps) *SellerService {
	return &SellerService{deps: deps}
}

// RegisterSellerInput son los datos del formulario de registro. Document es el
// archivo de verificación (opcional); si viene, se persiste en el artifact store.
type RegisterSellerInput struct {
	Name          string
	CompanyName   string
	Email         string
	CountryRegion string
	StreetAddress string
	PhoneNumber   string
	DocumentName  string
	Document      io.Reader
}

// Register crea la solicitud pending del usuario y dispara la notificación al
// chat de administración. A lo sumo una solicitud por usuario.
func (s *SellerService) Register(ctx context.Context, userID string, input RegisterSellerInput) (*repository.Seller, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("seller.register"), logger.UserID(userID))

	if input.Name == "" {
		return nil, apperrors.ErrMissingFields.WithDetail("name es requerido")
	}

	docPath := ""
	if input.Document != nil {
		saved, err := s.deps.Artifacts.Save(input.DocumentName, input.Document)
		if err != nil {
			return nil, fmt.Errorf("seller: save document: %w", err)
		}
		docPath = saved
	}

	seller, err := s.deps.Sellers.Create(ctx, repository.CreateSellerInput{
		UserID:        userID,
		Name:          input.Name,
		CompanyName:   input.CompanyName,
		Email:         input.Email,
		CountryRegion: input.CountryRegion,
		StreetAddress: input.StreetAddress,
		PhoneNumber:   input.PhoneNumber,
		DocumentPath:  docPath,
	})
	if err != nil {
		// El documento ya guardado queda huérfano: limpiarlo.
		if docPath != "" {
			_ = s.deps.Artifacts.Delete(docPath)
		}
		if repository.IsConflict(err) {
			return nil, apperrors.ErrSellerAlreadyExists
		}
		return nil, fmt.Errorf("seller: create: %w", err)
	}

	s.deps.Approval.Submit(ctx, seller)

	log.Info("seller application submitted", logger.SellerID(seller.ID))
	return seller, nil
}

// GetByUser retorna la solicitud del usuario autenticado.
func (s *SellerService) GetByUser(ctx context.Context, userID string) (*repository.Seller, error) {
	seller, err := s.deps.Sellers.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrSellerNotFound
		}
		return nil, fmt.Errorf("seller: get by user: %w", err)
	}
	return seller, nil
}

// GetByID retorna una solicitud puntual (vista admin).
func (s *SellerService) GetByID(ctx context.Context, id string) (*repository.Seller, error) {
	seller, err := s.deps.Sellers.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrSellerNotFound
		}
		return nil, fmt.Errorf("seller: get: %w", err)
	}
	return seller, nil
}

// List retorna todas las solicitudes (vista admin).
func (s *SellerService) List(ctx context.Context) ([]repository.Seller, error) {
	sellers, err := s.deps.Sellers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("seller: list: %w", err)
	}
	return sellers, nil
}

// Approve resuelve una solicitud desde la API admin (mismo workflow que el
// botón del bot).
func (s *SellerService) Approve(ctx context.Context, id string) (*repository.Seller, error) {
	seller, err := s.deps.Approval.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, approval.ErrAlreadyResolved) {
			return nil, apperrors.ErrConflict.WithDetail("La solicitud ya fue resuelta.")
		}
		return nil, fmt.Errorf("seller: approve: %w", err)
	}
	return seller, nil
}

// Reject rechaza una solicitud desde la API admin.
func (s *SellerService) Reject(ctx context.Context, id string) (*repository.Seller, error) {
	seller, err := s.deps.Approval.Reject(ctx, id)
	if err != nil {
		if errors.Is(err, approval.ErrAlreadyResolved) {
			return nil, apperrors.ErrConflict.WithDetail("La solicitud ya fue resuelta.")
		}
		return nil, fmt.Errorf("seller: reject: %w", err)
	}
	return seller, nil
}
