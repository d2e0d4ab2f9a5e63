// Package controllers contiene los handlers HTTP. Cada controller valida la
// request, delega en su service y serializa la respuesta; la lógica de negocio
// vive en los services.
package controllers

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/telemart/internal/http/dto"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/http/helpers"
	"github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/http/services"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// AuthController maneja el login por código de Telegram y el logout.
type AuthController struct {
	svc *services.AuthService
}

// NewAuthController arma el controller de autenticación.
func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// SendOTP maneja POST /api/auth/send-otp.
func (c *AuthController) SendOTP(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("auth.send_otp"))

	var req dto.SendOTPRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req.TelegramID = strings.TrimSpace(req.TelegramID)
	if req.TelegramID == "" {
		apperrors.WriteError(w, apperrors.ErrMissingFields.WithDetail("telegram_id es requerido"))
		return
	}

	if err := c.svc.SendOTP(r.Context(), req.TelegramID); err != nil {
		log.Warn("send otp failed", logger.Err(err))
		apperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Código enviado por Telegram."})
}

// VerifyOTP maneja POST /api/auth/verify-otp.
func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("auth.verify_otp"))

	var req dto.VerifyOTPRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req.TelegramID = strings.TrimSpace(req.TelegramID)
	req.Code = strings.TrimSpace(req.Code)
	if req.TelegramID == "" || req.Code == "" {
		apperrors.WriteError(w, apperrors.ErrMissingFields.WithDetail("telegram_id y code son requeridos"))
		return
	}

	result, err := c.svc.VerifyOTP(r.Context(), req.TelegramID, req.Code)
	if err != nil {
		log.Warn("verify otp failed", logger.Err(err))
		apperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.FromUser(result.User),
	})
}

// Logout maneja POST /api/auth/logout. Solo exige presencia del bearer y
// revoca lo que venga: un token vencido, malformado o ya revocado también
// cierra sesión con 200.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	raw := middlewares.GetRawToken(r.Context())
	if raw == "" {
		apperrors.WriteError(w, apperrors.ErrTokenMissing)
		return
	}

	if err := c.svc.Logout(r.Context(), raw); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Sesión cerrada."})
}
