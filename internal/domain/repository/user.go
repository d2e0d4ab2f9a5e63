package repository

import (
	"context"
	"time"
)

// Role es el rol de un usuario. Conjunto cerrado: representarlo como tipo
// propio hace irrepresentables los roles inválidos que permitía un string libre.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Valid reporta si r pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// ParseRole convierte un string a Role. Retorna ErrInvalidInput si no es un rol conocido.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidInput
	}
	return r, nil
}

// User representa un usuario sincronizado desde Telegram.
// Se crea/actualiza en el /start del bot; la API nunca lo crea directamente.
type User struct {
	ID           string
	TelegramID   string // único; es la identidad externa del usuario
	FirstName    string
	LastName     string
	Username     string
	PhoneNumber  string
	Image        string // URL de la foto de perfil
	LanguageCode string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName arma el nombre para mostrar en mensajes del bot.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UpsertUserInput contiene los campos sincronizados desde el perfil de Telegram.
type UpsertUserInput struct {
	TelegramID   string
	FirstName    string
	LastName     string
	Username     string
	Image        string
	LanguageCode string
}

// UpdateUserInput contiene los campos editables vía API admin.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *Role
}

// UserRepository es el directorio de usuarios.
// Lecturas y escrituras de registro único, fuertemente consistentes.
type UserRepository interface {
	// GetByTelegramID busca por identidad de Telegram. ErrNotFound si no existe.
	GetByTelegramID(ctx context.Context, telegramID string) (*User, error)

	// GetByID busca por ID interno. ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*User, error)

	// List retorna todos los usuarios.
	List(ctx context.Context) ([]User, error)

	// Upsert crea el usuario en el primer /start o resincroniza su perfil.
	// No pisa el rol de un usuario existente.
	Upsert(ctx context.Context, input UpsertUserInput) (*User, error)

	// Update aplica cambios parciales. ErrNotFound si no existe.
	Update(ctx context.Context, id string, input UpdateUserInput) (*User, error)

	// UpdateRole promueve/degrada el rol. ErrNotFound si no existe.
	UpdateRole(ctx context.Context, id string, role Role) error

	// Delete elimina un usuario. ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
