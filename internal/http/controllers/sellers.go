package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/telemart/internal/http/dto"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/http/helpers"
	"github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/http/services"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// maxUploadBytes limita los archivos subidos por multipart (10 MiB).
const maxUploadBytes = 10 << 20

// SellerController maneja el registro y la administración de vendedores.
type SellerController struct {
	svc *services.SellerService
}

// NewSellerController arma el controller de vendedores.
func NewSellerController(svc *services.SellerService) *SellerController {
	return &SellerController{svc: svc}
}

// Register maneja POST /api/sellers. Acepta multipart/form-data con los campos
// del formulario y un archivo "document" opcional.
func (c *SellerController) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("seller.register"))

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apperrors.WriteError(w, apperrors.ErrBadRequest.WithDetail("Se espera multipart/form-data.").WithCause(err))
		return
	}

	input := services.RegisterSellerInput{
		Name:          strings.TrimSpace(r.FormValue("name")),
		CompanyName:   strings.TrimSpace(r.FormValue("company_name")),
		Email:         strings.TrimSpace(r.FormValue("email")),
		CountryRegion: strings.TrimSpace(r.FormValue("country_region")),
		StreetAddress: strings.TrimSpace(r.FormValue("street_address")),
		PhoneNumber:   strings.TrimSpace(r.FormValue("phone_number")),
	}

	if file, header, err := r.FormFile("document"); err == nil {
		defer file.Close()
		input.Document = file
		input.DocumentName = header.Filename
	}

	seller, err := c.svc.Register(r.Context(), middlewares.GetUserID(r.Context()), input)
	if err != nil {
		log.Warn("seller registration failed", logger.Err(err))
		apperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.FromSeller(seller))
}

// Mine maneja GET /api/sellers/me: la solicitud del usuario autenticado.
func (c *SellerController) Mine(w http.ResponseWriter, r *http.Request) {
	seller, err := c.svc.GetByUser(r.Context(), middlewares.GetUserID(r.Context()))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromSeller(seller))
}

// List maneja GET /api/sellers (admin).
func (c *SellerController) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := c.svc.List(r.Context())
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromSellers(sellers))
}

// Get maneja GET /api/sellers/{id} (admin).
func (c *SellerController) Get(w http.ResponseWriter, r *http.Request) {
	seller, err := c.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromSeller(seller))
}

// Approve maneja POST /api/sellers/{id}/approve (admin). Mismo workflow que el
// botón inline del bot.
func (c *SellerController) Approve(w http.ResponseWriter, r *http.Request) {
	seller, err := c.svc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromSeller(seller))
}

// Reject maneja POST /api/sellers/{id}/reject (admin).
func (c *SellerController) Reject(w http.ResponseWriter, r *http.Request) {
	seller, err := c.svc.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromSeller(seller))
}
