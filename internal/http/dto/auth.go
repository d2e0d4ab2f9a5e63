// Package dto define los contratos JSON de la API pública. Mantiene los
// structs de dominio fuera del wire: lo que se serializa se decide acá.
package dto

import (
	"time"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// SendOTPRequest pide un código de login para una identidad de Telegram.
type SendOTPRequest struct {
	TelegramID string `json:"telegram_id"`
}

// VerifyOTPRequest canjea un código por un token de sesión.
type VerifyOTPRequest struct {
	TelegramID string `json:"telegram_id"`
	Code       string `json:"code"`
}

// TokenResponse es el resultado de un login exitoso.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// MessageResponse es una confirmación sin payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse es la vista pública de un usuario.
type UserResponse struct {
	ID           string    `json:"id"`
	TelegramID   string    `json:"telegram_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	Username     string    `json:"username,omitempty"`
	Image        string    `json:"image,omitempty"`
	LanguageCode string    `json:"language_code,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromUser proyecta el dominio al contrato público.
func FromUser(u *repository.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		TelegramID:   u.TelegramID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Image:        u.Image,
		LanguageCode: u.LanguageCode,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// FromUsers proyecta una lista de usuarios.
func FromUsers(users []repository.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}

// UpdateUserRequest son los campos editables por un admin.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
}
