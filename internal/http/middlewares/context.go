package middlewares

import (
	"context"

	"github.com/dropDatabas3/telemart/internal/auth/token"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxClaimsKey guarda los claims de sesión validados
	ctxClaimsKey ctxKey = "claims"
	// ctxTokenKey guarda el token crudo (lo necesita el logout para revocarlo)
	ctxTokenKey ctxKey = "token"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// =================================================================================
// CONTEXT SETTERS (Internos, usados por middlewares)
// =================================================================================

// WithClaims inyecta los claims de sesión en el contexto
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, claims)
}

// withRawToken inyecta el token crudo en el contexto (interno)
func withRawToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, ctxTokenKey, raw)
}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// =================================================================================
// CONTEXT GETTERS (Públicos, usados por handlers/services)
// =================================================================================

// GetClaims obtiene los claims de sesión del contexto.
// Retorna nil si no hay claims (guard no aplicado o token no validado).
func GetClaims(ctx context.Context) *token.Claims {
	if v := ctx.Value(ctxClaimsKey); v != nil {
		if c, ok := v.(*token.Claims); ok {
			return c
		}
	}
	return nil
}

// GetRawToken obtiene el token crudo del contexto.
// Retorna cadena vacía si no pasó por el guard.
func GetRawToken(ctx context.Context) string {
	if v := ctx.Value(ctxTokenKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserID obtiene el user ID de los claims del contexto.
// Retorna cadena vacía si no hay sesión.
func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.UserID
	}
	return ""
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
