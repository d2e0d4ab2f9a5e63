package services

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
)

// FavoriteDeps son las dependencias del servicio de favoritos.
type FavoriteDeps struct {
	Favorites repository.FavoriteRepository
	Products  repository.ProductRepository
}

// FavoriteService mantiene la lista de favoritos de cada usuario.
type FavoriteService struct {
	deps FavoriteDeps
}

// NewFavoriteService arma el servicio de favoritos.
func NewFavoriteService(deps FavoriteDeps) *FavoriteService {
	return &FavoriteService{deps: deps}
}

// Add marca un producto como favorito. El par (usuario, producto) es único.
func (s *FavoriteService) Add(ctx context.Context, userID, productID string) (*repository.Favorite, error) {
	if _, err := s.deps.Products.GetByID(ctx, productID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("favorite: lookup product: %w", err)
	}

	fav, err := s.deps.Favorites.Create(ctx, userID, productID)
	if err != nil {
		if repository.IsConflict(err) {
			return nil, apperrors.ErrFavoriteAlreadyExists
		}
		return nil, fmt.Errorf("favorite: create: %w", err)
	}
	return fav, nil
}

// List retorna los favoritos del usuario.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]repository.Favorite, error) {
	favs, err := s.deps.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite: list: %w", err)
	}
	return favs, nil
}

// Remove elimina un favorito del usuario. Solo el dueño puede borrarlo.
func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) error {
	fav, err := s.deps.Favorites.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrNotFound.WithDetail("El producto no está en favoritos.")
		}
		return fmt.Errorf("favorite: lookup: %w", err)
	}
	if err := s.deps.Favorites.Delete(ctx, fav.ID); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrNotFound.WithDetail("El producto no está en favoritos.")
		}
		return fmt.Errorf("favorite: delete: %w", err)
	}
	return nil
}
