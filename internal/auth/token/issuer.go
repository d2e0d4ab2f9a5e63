// Package token emite y valida los tokens de sesión (JWT HS256).
//
// La validez es una ventana fija de 7 días desde la emisión. El token no se
// persiste: su validez se computa (firma + expiración) y el guard agrega el
// chequeo negativo contra el registro de revocados.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// DefaultTTL es la ventana de validez de un token de sesión.
const DefaultTTL = 7 * 24 * time.Hour

// DevSecret es el fallback de desarrollo. Si el Issuer arranca con este valor
// hay que loguear un warning: jamás es un default aceptable en producción.
const DevSecret = "secret_key"

var (
	// ErrInvalid indica firma inválida o token malformado.
	ErrInvalid = errors.New("token: invalid")

	// ErrExpired indica que el token venció.
	ErrExpired = errors.New("token: expired")
)

// Claims son los datos de sesión que viajan dentro del token.
type Claims struct {
	UserID     string
	TelegramID string
	Role       repository.Role
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Issuer firma y verifica tokens de sesión con un secreto compartido del proceso.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configura el Issuer.
type Option func(*Issuer)

// WithTTL cambia la ventana de validez (default 7 días).
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// WithClock inyecta el reloj (para tests).
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer crea un emisor con el secreto dado.
func NewIssuer(secret string, opts ...Option) *Issuer {
	i := &Issuer{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// UsesDevSecret reporta si el emisor quedó con el secreto de desarrollo.
func (i *Issuer) UsesDevSecret() bool {
	return string(i.secret) == DevSecret
}

// TTL retorna la ventana de validez configurada.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue firma un token de sesión para el usuario dado.
func (i *Issuer) Issue(userID, telegramID string, role repository.Role) (string, error) {
	now := i.now().UTC()
	claims := jwtv5.MapClaims{
		"sub":  userID,
		"tid":  telegramID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify valida firma y expiración y extrae los claims de sesión.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	parsed, err := jwtv5.Parse(raw, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtv5.WithTimeFunc(i.now), jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	mc, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}

	sub, _ := mc["sub"].(string)
	tid, _ := mc["tid"].(string)
	roleStr, _ := mc["role"].(string)
	if sub == "" || tid == "" {
		return nil, ErrInvalid
	}
	role, err := repository.ParseRole(roleStr)
	if err != nil {
		return nil, ErrInvalid
	}

	claims := &Claims{
		UserID:     sub,
		TelegramID: tid,
		Role:       role,
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// RemainingTTL retorna cuánto le queda de vida al token, mirando solo el claim
// exp (sin validar firma). Lo usa el registro de revocados para asignar a cada
// entrada un TTL igual a la vida restante del token y no crecer sin límite.
func (i *Issuer) RemainingTTL(raw string) time.Duration {
	parser := jwtv5.NewParser()
	tk, _, err := parser.ParseUnverified(raw, jwtv5.MapClaims{})
	if err != nil {
		return i.ttl
	}
	mc, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return i.ttl
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return i.ttl
	}
	remaining := exp.Time.Sub(i.now())
	if remaining <= 0 || remaining > i.ttl {
		return i.ttl
	}
	return remaining
}
