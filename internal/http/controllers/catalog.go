package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/http/dto"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/http/helpers"
	"github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/http/services"
)

// CatalogController expone categorías, productos y eventos.
type CatalogController struct {
	svc *services.CatalogService
}

// NewCatalogController arma el controller de catálogo.
func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{svc: svc}
}

// ─────────────────────────────────────────────────────────────────────────────
// Categorías
// ─────────────────────────────────────────────────────────────────────────────

// CreateCategory maneja POST /api/categories.
func (c *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	cat, err := c.svc.CreateCategory(r.Context(), middlewares.GetUserID(r.Context()), repository.CreateCategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.FromCategory(cat))
}

// ListCategories maneja GET /api/categories (?user_id= filtra por dueño).
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.svc.ListCategories(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCategories(cats))
}

// GetCategory maneja GET /api/categories/{id}.
func (c *CatalogController) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := c.svc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCategory(cat))
}

// UpdateCategory maneja PATCH /api/categories/{id}.
func (c *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCategoryRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	cat, err := c.svc.UpdateCategory(r.Context(), chi.URLParam(r, "id"), repository.UpdateCategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromCategory(cat))
}

// DeleteCategory maneja DELETE /api/categories/{id}.
func (c *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteNoContent(w)
}

// ─────────────────────────────────────────────────────────────────────────────
// Productos
// ─────────────────────────────────────────────────────────────────────────────

// CreateProduct maneja POST /api/products.
func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	product, err := c.svc.CreateProduct(r.Context(), middlewares.GetUserID(r.Context()), repository.CreateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Stock:       req.Stock,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.FromProduct(product))
}

// ListProducts maneja GET /api/products (?user_id= filtra por dueño).
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.ListProducts(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromProducts(products))
}

// GetProduct maneja GET /api/products/{id}.
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := c.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromProduct(product))
}

// UpdateProduct maneja PATCH /api/products/{id}.
func (c *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	product, err := c.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), repository.UpdateProductInput{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromProduct(product))
}

// DeleteProduct maneja DELETE /api/products/{id}.
func (c *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteNoContent(w)
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos
// ─────────────────────────────────────────────────────────────────────────────

// CreateEvent maneja POST /api/events.
func (c *CatalogController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	event, err := c.svc.CreateEvent(r.Context(), middlewares.GetUserID(r.Context()), repository.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Image:       req.Image,
	})
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.FromEvent(event))
}

// ListEvents maneja GET /api/events.
func (c *CatalogController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.svc.ListEvents(r.Context())
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromEvents(events))
}

// GetEvent maneja GET /api/events/{id}.
func (c *CatalogController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromEvent(event))
}

// UpdateEvent maneja PATCH /api/events/{id}.
func (c *CatalogController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEventRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	event, err := c.svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), repository.UpdateEventInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Image:       req.Image,
	})
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromEvent(event))
}

// DeleteEvent maneja DELETE /api/events/{id}.
func (c *CatalogController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteNoContent(w)
}
