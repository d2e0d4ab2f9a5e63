// Package services contiene la lógica de negocio detrás de los controllers.
// Cada service recibe sus dependencias por un struct Deps y traduce los
// errores esperables a AppError; los controllers solo serializan.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dropDatabas3/telemart/internal/auth/otp"
	"github.com/dropDatabas3/telemart/internal/auth/revocation"
	"github.com/dropDatabas3/telemart/internal/auth/token"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
	"github.com/dropDatabas3/telemart/internal/observability/metrics"
)

// TextSender es el canal por el que viaja el código de un solo uso.
// Lo implementa el bot de Telegram (o el noop en dev).
type TextSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// AuthDeps son las dependencias del servicio de autenticación.
type AuthDeps struct {
	Users   repository.UserRepository
	Codes   *otp.Store
	Tokens  *token.Issuer
	Revoked *revocation.Registry
	Sender  TextSender
}

// AuthService implementa el login por código de Telegram y el logout.
type AuthService struct {
	deps AuthDeps
}

// NewAuthService arma el servicio de autenticación.
func NewAuthService(deps AuthDeps) *AuthService {
	return &AuthService{deps: deps}
}

// SendOTP emite un código para la identidad dada y lo entrega por Telegram.
// La identidad debe existir: el usuario se registra con /start en el bot,
// nunca desde la API.
func (s *AuthService) SendOTP(ctx context.Context, telegramID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("auth.send_otp"), logger.TelegramID(telegramID))

	user, err := s.deps.Users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrUserNotFound.WithDetail("Inicie el bot con /start antes de pedir un código.")
		}
		return fmt.Errorf("auth: lookup user: %w", err)
	}

	code, err := s.deps.Codes.Issue(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("auth: issue code: %w", err)
	}

	chatID, err := strconv.ParseInt(user.TelegramID, 10, 64)
	if err != nil {
		return fmt.Errorf("auth: telegram id %q is not numeric: %w", user.TelegramID, err)
	}

	text := fmt.Sprintf("Tu código de acceso es: %s\nVence en %s.", code, s.deps.Codes.TTL())
	if err := s.deps.Sender.SendText(ctx, chatID, text); err != nil {
		return fmt.Errorf("auth: deliver code: %w", err)
	}

	metrics.OTPIssued()
	log.Info("otp issued", logger.UserID(user.ID))
	return nil
}

// LoginResult es el resultado de un canje de código exitoso.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *repository.User
}

// VerifyOTP canjea un código válido por un token de sesión de 7 días.
func (s *AuthService) VerifyOTP(ctx context.Context, telegramID, code string) (*LoginResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("auth.verify_otp"), logger.TelegramID(telegramID))

	if err := s.deps.Codes.Verify(ctx, telegramID, code); err != nil {
		switch {
		case errors.Is(err, otp.ErrNoRequest):
			metrics.OTPVerified("no_request")
			return nil, apperrors.ErrOTPNotRequested
		case errors.Is(err, otp.ErrExpired):
			metrics.OTPVerified("expired")
			return nil, apperrors.ErrOTPExpired
		case errors.Is(err, otp.ErrMismatch):
			metrics.OTPVerified("mismatch")
			log.Warn("otp mismatch")
			return nil, apperrors.ErrOTPMismatch
		}
		return nil, fmt.Errorf("auth: verify code: %w", err)
	}

	user, err := s.deps.Users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if repository.IsNotFound(err) {
			// El código era válido pero el usuario desapareció entremedio.
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: lookup user: %w", err)
	}

	signed, err := s.deps.Tokens.Issue(user.ID, user.TelegramID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth: sign token: %w", err)
	}

	claims, err := s.deps.Tokens.Verify(signed)
	if err != nil {
		return nil, fmt.Errorf("auth: decode issued token: %w", err)
	}

	metrics.OTPVerified("ok")
	log.Info("login ok", logger.UserID(user.ID), logger.Role(string(user.Role)))
	return &LoginResult{Token: signed, ExpiresAt: claims.ExpiresAt, User: user}, nil
}

// Logout revoca el token presentado. Idempotente: revocar dos veces no falla.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if err := s.deps.Revoked.Revoke(ctx, rawToken); err != nil {
		return fmt.Errorf("auth: revoke token: %w", err)
	}
	metrics.TokenRevoked()
	logger.From(ctx).Info("session revoked",
		logger.Layer("service"), logger.Op("auth.logout"))
	return nil
}
