// Package helpers agrupa utilidades compartidas de la capa HTTP.
package helpers

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
)

// maxBodyBytes limita el tamaño del body JSON aceptado (1 MiB).
const maxBodyBytes = 1 << 20

// ReadJSON decodifica el body de la request en dst. Valida Content-Type,
// limita el tamaño y rechaza campos desconocidos.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		return apperrors.ErrInvalidJSON.WithDetail("Content-Type debe ser application/json")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return apperrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}

// WriteJSON serializa v con el status dado. Un error de encoding a esta
// altura ya no es recuperable: los headers salieron.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteNoContent responde 204 sin body.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
