package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse es el contrato de error de la API: code estable sobre el que
// el frontend decide, message presentable y detail opcional con el matiz
// puntual ("Inicie el bot con /start...", etc.). La causa nunca viaja.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError resuelve cualquier error a AppError y lo serializa. Un error no
// catalogado sale como 500 genérico; su causa queda solo en los logs.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)

	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}
