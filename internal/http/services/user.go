package services

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// UserDeps son las dependencias del servicio de usuarios.
type UserDeps struct {
	Users repository.UserRepository
}

// UserService expone el directorio de usuarios para el perfil propio y la
// administración.
type UserService struct {
	deps UserDeps
}

// NewUserService arma el servicio de usuarios.
func NewUserService(deps UserDeps) *UserService {
	return &UserService{deps: deps}
}

// Get retorna un usuario por ID.
func (s *UserService) Get(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("user: get: %w", err)
	}
	return user, nil
}

// List retorna todos los usuarios (vista admin).
func (s *UserService) List(ctx context.Context) ([]repository.User, error) {
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user: list: %w", err)
	}
	return users, nil
}

// Update aplica cambios parciales de un admin, incluido el rol.
func (s *UserService) Update(ctx context.Context, id string, firstName, lastName, role *string) (*repository.User, error) {
	input := repository.UpdateUserInput{
		FirstName: firstName,
		LastName:  lastName,
	}
	if role != nil {
		parsed, err := repository.ParseRole(*role)
		if err != nil {
			return nil, apperrors.ErrInvalidParameter.WithDetail("role debe ser user, admin u owner")
		}
		input.Role = &parsed
	}

	user, err := s.deps.Users.Update(ctx, id, input)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("user: update: %w", err)
	}

	logger.From(ctx).Info("user updated",
		logger.Layer("service"), logger.Op("user.update"), logger.UserID(id))
	return user, nil
}

// Delete elimina un usuario (vista admin).
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.deps.Users.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("user: delete: %w", err)
	}
	return nil
}
