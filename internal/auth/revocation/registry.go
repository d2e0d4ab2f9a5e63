// Package revocation lleva el registro de tokens de sesión invalidados antes
// de su vencimiento natural (logout).
//
// La pertenencia al registro implica rechazo, sin importar que la firma y la
// expiración del token sigan siendo válidas. Con el backend de memoria el
// registro se vacía al reiniciar el proceso: tradeoff de durabilidad aceptado
// (y marcado en los tests); con Redis sobrevive reinicios.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dropDatabas3/telemart/internal/cache"
)

// TTLFunc calcula cuánto debe retenerse una entrada: la vida restante del
// token revocado. Así el registro se poda solo y no crece sin límite en
// procesos longevos.
type TTLFunc func(token string) time.Duration

// Registry es el conjunto de tokens revocados, respaldado por un cache inyectado.
type Registry struct {
	cache cache.Cache
	ttl   TTLFunc
}

// NewRegistry crea un registro. ttl puede ser nil: en ese caso las entradas
// no expiran nunca (comportamiento legacy, solo razonable en tests).
func NewRegistry(c cache.Cache, ttl TTLFunc) *Registry {
	return &Registry{cache: c, ttl: ttl}
}

// key hashea el token: no queremos copias de tokens vigentes en Redis.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

// Revoke agrega el token al registro. Idempotente: revocar dos veces no es error.
// No valida la firma: revocar un token ya inválido es inofensivo.
func (r *Registry) Revoke(ctx context.Context, token string) error {
	var ttl time.Duration
	if r.ttl != nil {
		ttl = r.ttl(token)
	}
	return r.cache.Set(ctx, key(token), []byte("1"), ttl)
}

// IsRevoked reporta si el token fue revocado explícitamente.
func (r *Registry) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := r.cache.Get(ctx, key(token))
	if err != nil {
		if cache.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
