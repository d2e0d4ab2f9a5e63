// Package approval implementa el flujo de aprobación de vendedores: la
// solicitud viaja al chat de administración por Telegram con botones inline,
// y la resolución (aprobar/rechazar) vuelve como callback.
package approval

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// Channel es la superficie de Telegram que necesita el workflow.
// La implementa el bot real y un noop cuando Telegram está deshabilitado.
type Channel interface {
	// SendText envía un mensaje de texto plano a un chat.
	SendText(ctx context.Context, chatID int64, text string) error

	// SendDocument envía un archivo local como adjunto.
	SendDocument(ctx context.Context, chatID int64, filePath, caption string) error

	// SendApprovalRequest envía el resumen de la solicitud con los botones
	// aprobar/rechazar. Retorna el message ID para poder editarlo después.
	SendApprovalRequest(ctx context.Context, chatID int64, text, sellerID string) (int, error)

	// EditMessageText reemplaza el texto de un mensaje ya enviado.
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error
}

// ErrAlreadyResolved indica que la solicitud ya fue resuelta por otro operador.
var ErrAlreadyResolved = errors.New("approval: request already resolved")

// Service orquesta el ciclo de vida de las solicitudes de vendedor.
type Service struct {
	sellers     repository.SellerRepository
	users       repository.UserRepository
	artifacts   *artifacts.Store
	channel     Channel
	adminChatID int64
}

// NewService arma el workflow con sus dependencias.
func NewService(sellers repository.SellerRepository, users repository.UserRepository, store *artifacts.Store, ch Channel, adminChatID int64) *Service {
	return &Service{
		sellers:     sellers,
		users:       users,
		artifacts:   store,
		channel:     ch,
		adminChatID: adminChatID,
	}
}

// chatID convierte el telegram_id persistido (string) al chat id numérico.
func chatID(telegramID string) (int64, bool) {
	id, err := strconv.ParseInt(telegramID, 10, 64)
	return id, err == nil
}

// Submit notifica al chat de administración que hay una solicitud nueva:
// primero el documento adjunto (si hay), después el resumen con botones.
// Los fallos de notificación se loguean pero no revierten la solicitud ya
// persistida: el operador puede resolverla igual desde la base.
func (s *Service) Submit(ctx context.Context, seller *repository.Seller) {
	log := logger.From(ctx).With(logger.SellerID(seller.ID))

	if seller.DocumentPath != "" && s.artifacts.Exists(seller.DocumentPath) {
		full := filepath.Join(s.artifacts.Dir(), seller.DocumentPath)
		if err := s.channel.SendDocument(ctx, s.adminChatID, full, "Documento de verificación"); err != nil {
			log.Warn("failed to send seller document to admin chat", logger.Err(err))
		}
	}

	text := fmt.Sprintf(
		"Nueva solicitud de vendedor\n\nNombre: %s\nEmpresa: %s\nEmail: %s\nPaís/Región: %s\nDirección: %s\nTeléfono: %s",
		seller.Name, seller.CompanyName, seller.Email,
		seller.CountryRegion, seller.StreetAddress, seller.PhoneNumber,
	)
	if _, err := s.channel.SendApprovalRequest(ctx, s.adminChatID, text, seller.ID); err != nil {
		log.Warn("failed to send approval request to admin chat", logger.Err(err))
	}
}

// Approve resuelve la solicitud: estado approved y rol owner para el usuario.
// Idempotente: si ya estaba aprobada retorna ErrAlreadyResolved sin tocar nada,
// así el segundo operador que toca el botón no re-ejecuta efectos.
func (s *Service) Approve(ctx context.Context, sellerID string) (*repository.Seller, error) {
	seller, err := s.sellers.GetByID(ctx, sellerID)
	if err != nil {
		if repository.IsNotFound(err) {
			// Rechazada (y borrada) o nunca existió: resuelta en ambos casos.
			return nil, ErrAlreadyResolved
		}
		return nil, err
	}
	if seller.Status == repository.SellerApproved {
		return seller, ErrAlreadyResolved
	}

	if err := s.sellers.UpdateStatus(ctx, sellerID, repository.SellerApproved); err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, seller.UserID, repository.RoleOwner); err != nil {
		return nil, fmt.Errorf("approval: promote user %s: %w", seller.UserID, err)
	}
	seller.Status = repository.SellerApproved

	s.notify(ctx, seller.UserID,
		"¡Felicitaciones! Tu solicitud de vendedor fue aprobada. Ya podés publicar productos en la tienda.")
	return seller, nil
}

// Reject resuelve la solicitud eliminándola: primero el documento (best-effort),
// después el registro. Idempotente: una solicitud ya borrada retorna
// ErrAlreadyResolved.
func (s *Service) Reject(ctx context.Context, sellerID string) (*repository.Seller, error) {
	seller, err := s.sellers.GetByID(ctx, sellerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAlreadyResolved
		}
		return nil, err
	}

	// El documento se borra best-effort: un archivo ya ausente o una URL
	// heredada no deben bloquear el rechazo.
	if seller.DocumentPath != "" {
		if err := s.artifacts.Delete(seller.DocumentPath); err != nil {
			logger.From(ctx).Warn("failed to delete seller document",
				logger.SellerID(sellerID), logger.Err(err))
		}
	}

	if err := s.sellers.Delete(ctx, sellerID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAlreadyResolved
		}
		return nil, err
	}
	seller.Status = repository.SellerRejected

	s.notify(ctx, seller.UserID,
		"Tu solicitud de vendedor fue rechazada. Podés volver a aplicar con la documentación corregida.")
	return seller, nil
}

// notify envía un mensaje al usuario dueño de la solicitud. Best-effort:
// el usuario pudo haber bloqueado al bot y eso no invalida la resolución.
func (s *Service) notify(ctx context.Context, userID, text string) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.From(ctx).Warn("cannot notify user", logger.UserID(userID), logger.Err(err))
		return
	}
	id, ok := chatID(user.TelegramID)
	if !ok {
		logger.From(ctx).Warn("user has non-numeric telegram id", logger.UserID(userID))
		return
	}
	if err := s.channel.SendText(ctx, id, text); err != nil {
		logger.From(ctx).Warn("failed to notify user", logger.UserID(userID), logger.Err(err))
	}
}
