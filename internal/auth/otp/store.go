// Package otp implementa el almacén de códigos one-time para el login por Telegram.
//
// Un código por usuario: emitir uno nuevo pisa el anterior sin consumir.
// La expiración es perezosa: se detecta comparando contra el reloj al verificar,
// no hay timers activos. El reloj es inyectable para tests determinísticos.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dropDatabas3/telemart/internal/cache"
)

// Errores esperables de la verificación. El service los traduce a mensajes
// específicos para el usuario; nunca llegan como 500.
var (
	// ErrNoRequest indica que no hay ningún código emitido para esa identidad.
	ErrNoRequest = errors.New("otp: no pending code")

	// ErrExpired indica que el código existía pero ya venció (y fue descartado).
	ErrExpired = errors.New("otp: code expired")

	// ErrMismatch indica que el código no coincide. El registro queda, se puede reintentar.
	ErrMismatch = errors.New("otp: code mismatch")
)

// DefaultTTL es la ventana de validez de un código.
const DefaultTTL = 5 * time.Minute

// record es lo que persiste en el cache, serializado como JSON.
type record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store emite y verifica códigos de un solo uso, respaldado por un cache inyectado.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// Option configura el Store.
type Option func(*Store)

// WithTTL cambia la ventana de validez (default 5 minutos).
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock inyecta el reloj (para tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore crea un almacén de códigos sobre el cache dado.
func NewStore(c cache.Cache, opts ...Option) *Store {
	s := &Store{
		cache: c,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(telegramID string) string {
	return "otp:" + telegramID
}

// Issue genera un código de 6 dígitos uniforme en [100000, 999999], lo guarda
// con expiración now+ttl y lo retorna para entregarlo por el canal out-of-band.
// Si había un código sin consumir para esa identidad, queda invalidado
// (last-issue-wins; dos Issue concurrentes para la misma identidad pueden
// dejar almacenado un código distinto del último entregado — riesgo aceptado).
func (s *Store) Issue(ctx context.Context, telegramID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	rec := record{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("otp: encode record: %w", err)
	}

	// El TTL del cache es solo un backstop de limpieza: la expiración real
	// se decide contra ExpiresAt al verificar. Lo dejamos holgado para que
	// un código vencido siga presente y la verificación pueda distinguir
	// "expirado" de "nunca pedido".
	if err := s.cache.Set(ctx, key(telegramID), b, 2*s.ttl); err != nil {
		return "", fmt.Errorf("otp: store code: %w", err)
	}
	return code, nil
}

// Verify valida el código presentado contra el almacenado.
//
//   - Sin registro: ErrNoRequest.
//   - Vencido (now >= ExpiresAt): borra el registro y retorna ErrExpired.
//   - Distinto: ErrMismatch; el registro queda y se permite reintentar
//     (acotado solo por la expiración, no por cantidad de intentos).
//   - Igual: borra el registro y retorna nil. Un código verificado con éxito
//     no puede verificarse de nuevo: es de un solo uso por construcción.
func (s *Store) Verify(ctx context.Context, telegramID, submitted string) error {
	b, err := s.cache.Get(ctx, key(telegramID))
	if err != nil {
		if cache.IsNotFound(err) {
			return ErrNoRequest
		}
		return fmt.Errorf("otp: load code: %w", err)
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		// Registro corrupto: descartarlo y tratarlo como inexistente.
		_ = s.cache.Delete(ctx, key(telegramID))
		return ErrNoRequest
	}

	if !s.now().Before(rec.ExpiresAt) {
		_ = s.cache.Delete(ctx, key(telegramID))
		return ErrExpired
	}

	if rec.Code != submitted {
		return ErrMismatch
	}

	if err := s.cache.Delete(ctx, key(telegramID)); err != nil {
		return fmt.Errorf("otp: consume code: %w", err)
	}
	return nil
}

// TTL retorna la ventana de validez configurada.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
