// Package cache provee un key-value store concurrente con TTL y soporte multi-backend.
//
// Backends:
//   - Memory (in-process, para desarrollo/testing; se pierde al reiniciar)
//   - Redis (para producción, sobrevive reinicios del servicio)
//
// Lo usan el almacén de códigos OTP y el registro de tokens revocados. Ninguno de
// los dos es estado global ambiente: las instancias se inyectan y cada test puede
// crear la suya.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indica que la key no existe (o ya expiró).
var ErrNotFound = errors.New("cache: key not found")

// Cache define las operaciones mínimas que necesitan los stores de auth.
type Cache interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda un valor con TTL. Si ttl es 0, no expira.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete elimina una key. Eliminar una key inexistente no es error.
	Delete(ctx context.Context, key string) error

	// Close libera recursos del backend.
	Close() error
}

// Config configuración para crear un cache.
type Config struct {
	Kind   string // "memory" | "redis"
	Addr   string // redis host:port
	DB     int    // redis db
	Prefix string // prefijo para todas las keys
}

// New crea un cache según la configuración. Default: memory.
func New(cfg Config) Cache {
	switch cfg.Kind {
	case "redis":
		return NewRedis(cfg.Addr, cfg.DB, cfg.Prefix)
	default:
		return NewMemory(cfg.Prefix)
	}
}

// IsNotFound verifica si el error es por key inexistente.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
