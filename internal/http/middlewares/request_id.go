package middlewares

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
)

// requestIDHeader viaja de ida y de vuelta: la mini-app de la tienda lo
// propaga en sus llamadas para correlacionarlas con los logs de la API.
const requestIDHeader = "X-Request-ID"

// WithRequestID propaga el id de request del cliente, o genera uno si no
// vino, lo expone en la respuesta y lo deja en el contexto para el logger.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if rid == "" {
				rid = newRequestID()
			}
			w.Header().Set(requestIDHeader, rid)
			next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), rid)))
		})
	}
}

func newRequestID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
