package controllers

import (
	"net/http"

	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/http/dto"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/http/helpers"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// UploadController recibe archivos (imágenes de catálogo) y los persiste en el
// artifact store. El path devuelto se referencia después desde los JSON de
// categorías, productos y eventos.
type UploadController struct {
	store     *artifacts.Store
	publicURL string
}

// NewUploadController arma el controller de uploads. publicURL es la base con
// la que se construye la URL servida (puede ser vacía).
func NewUploadController(store *artifacts.Store, publicURL string) *UploadController {
	return &UploadController{store: store, publicURL: publicURL}
}

// Upload maneja POST /api/uploads. Espera multipart/form-data con un campo "file".
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("uploads.upload"))

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apperrors.WriteError(w, apperrors.ErrBadRequest.WithDetail("Se espera multipart/form-data.").WithCause(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apperrors.WriteError(w, apperrors.ErrMissingFields.WithDetail("file es requerido"))
		return
	}
	defer file.Close()

	path, err := c.store.Save(header.Filename, file)
	if err != nil {
		log.Error("failed to save upload", logger.Err(err))
		apperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.UploadResponse{
		Path: path,
		URL:  c.publicURL + "/uploads/" + path,
	})
}
