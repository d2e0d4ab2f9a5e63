package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/telemart/internal/auth/revocation"
	"github.com/dropDatabas3/telemart/internal/auth/token"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// =================================================================================
// AUTHENTICATION MIDDLEWARES
// =================================================================================

// bearerToken extrae el token del header Authorization. Cadena vacía si falta.
func bearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[len("Bearer "):])
}

// RequireBearer solo exige que la request traiga un bearer token e inyecta la
// cadena cruda en el contexto, sin validar firma ni revocación. Es el guard
// del logout: revocar un token ya inválido es inofensivo, y exigir un token
// sano dejaría sesiones a medio cerrar.
func RequireBearer() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				apperrors.WriteError(w, apperrors.ErrTokenMissing)
				return
			}
			next.ServeHTTP(w, r.WithContext(withRawToken(r.Context(), raw)))
		})
	}
}

// RequireAuth valida Authorization: Bearer <token> y guarda los claims en el
// contexto. Orden de chequeos: presencia, revocación, firma/expiración,
// existencia del usuario. La revocación va primero: un token revocado se
// rechaza sin gastar una verificación de firma, y la respuesta no filtra si
// además era inválido. El chequeo de existencia cubre al usuario borrado por
// un admin con una sesión todavía vigente.
func RequireAuth(issuer *token.Issuer, registry *revocation.Registry, users repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				apperrors.WriteError(w, apperrors.ErrTokenMissing)
				return
			}

			revoked, err := registry.IsRevoked(r.Context(), raw)
			if err != nil {
				// El registro no responde: fail-closed, una sesión dudosa no pasa.
				logger.From(r.Context()).Error("revocation check failed", logger.Err(err))
				apperrors.WriteError(w, apperrors.ErrServiceUnavailable)
				return
			}
			if revoked {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="token revoked"`)
				apperrors.WriteError(w, apperrors.ErrTokenRevoked)
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				if errors.Is(err, token.ErrExpired) {
					apperrors.WriteError(w, apperrors.ErrTokenExpired)
					return
				}
				apperrors.WriteError(w, apperrors.ErrTokenInvalid)
				return
			}

			if _, err := users.GetByID(r.Context(), claims.UserID); err != nil {
				if repository.IsNotFound(err) {
					w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="unknown subject"`)
					apperrors.WriteError(w, apperrors.ErrUnauthorized)
					return
				}
				logger.From(r.Context()).Error("subject lookup failed", logger.Err(err))
				apperrors.WriteError(w, apperrors.ErrServiceUnavailable)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = withRawToken(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole exige que la sesión tenga uno de los roles dados.
// Debe usarse después de RequireAuth.
func RequireRole(roles ...repository.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				apperrors.WriteError(w, apperrors.ErrUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			apperrors.WriteError(w, apperrors.ErrForbidden)
		})
	}
}
