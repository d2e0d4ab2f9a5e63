package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/telemart/internal/approval"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// Dispatcher conecta los updates del bot con el dominio: /start sincroniza el
// perfil del usuario, los callbacks resuelven solicitudes de vendedor.
type Dispatcher struct {
	users    repository.UserRepository
	approval *approval.Service
}

// NewDispatcher arma el dispatcher.
func NewDispatcher(users repository.UserRepository, approvalSvc *approval.Service) *Dispatcher {
	return &Dispatcher{users: users, approval: approvalSvc}
}

// HandleStart crea o resincroniza el usuario y arma la bienvenida.
func (d *Dispatcher) HandleStart(ctx context.Context, p Profile) (string, error) {
	user, err := d.users.Upsert(ctx, repository.UpsertUserInput{
		TelegramID:   p.TelegramID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Username:     p.Username,
		LanguageCode: p.LanguageCode,
	})
	if err != nil {
		return "", fmt.Errorf("bot: sync profile: %w", err)
	}

	logger.From(ctx).Info("user started bot",
		logger.UserID(user.ID), logger.TelegramID(user.TelegramID))

	return fmt.Sprintf("¡Hola, %s! Bienvenido a la tienda. Tocá el botón para empezar a comprar.", user.FullName()), nil
}

// HandleCallback interpreta el callback_data de los botones inline.
// Formato: "<acción>:<seller_id>" con acción approve|reject.
func (d *Dispatcher) HandleCallback(ctx context.Context, cb Callback) (string, error) {
	action, sellerID, ok := strings.Cut(cb.Data, ":")
	if !ok || sellerID == "" {
		// Data desconocida (botón viejo u otro teclado): ignorar sin error.
		return "", nil
	}

	switch action {
	case "approve":
		seller, err := d.approval.Approve(ctx, sellerID)
		if err != nil {
			if errors.Is(err, approval.ErrAlreadyResolved) {
				return "⚠️ La solicitud ya fue resuelta.", nil
			}
			return "", err
		}
		return fmt.Sprintf("✅ Solicitud de %s aprobada.", seller.Name), nil

	case "reject":
		seller, err := d.approval.Reject(ctx, sellerID)
		if err != nil {
			if errors.Is(err, approval.ErrAlreadyResolved) {
				return "⚠️ La solicitud ya fue resuelta.", nil
			}
			return "", err
		}
		return fmt.Sprintf("❌ Solicitud de %s rechazada.", seller.Name), nil
	}
	return "", nil
}
