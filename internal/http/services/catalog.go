package services

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// CatalogDeps son las dependencias del servicio de catálogo.
type CatalogDeps struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Events     repository.EventRepository
	Artifacts  *artifacts.Store
}

// CatalogService administra categorías, productos y eventos. Las lecturas son
// públicas; las escrituras las habilita el guard de roles en el router.
type CatalogService struct {
	deps CatalogDeps
}

// NewCatalogService arma el servicio de catálogo.
func NewCatalogService(deps CatalogDeps) *CatalogService {
	return &CatalogService{deps: deps}
}

// ─────────────────────────────────────────────────────────────────────────────
// Categorías
// ─────────────────────────────────────────────────────────────────────────────

// CreateCategory crea una categoría a nombre del usuario autenticado.
func (s *CatalogService) CreateCategory(ctx context.Context, userID string, input repository.CreateCategoryInput) (*repository.Category, error) {
	if input.Name == "" {
		return nil, apperrors.ErrMissingFields.WithDetail("name es requerido")
	}
	input.UserID = userID

	cat, err := s.deps.Categories.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("catalog: create category: %w", err)
	}
	logger.From(ctx).Info("category created",
		logger.Layer("service"), logger.Op("catalog.create_category"),
		logger.UserID(userID), logger.String("category_id", cat.ID))
	return cat, nil
}

// GetCategory retorna una categoría puntual.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*repository.Category, error) {
	cat, err := s.deps.Categories.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrNotFound.WithDetail("La categoría no existe.")
		}
		return nil, fmt.Errorf("catalog: get category: %w", err)
	}
	return cat, nil
}

// ListCategories retorna todas las categorías, o las de un usuario si
// userID no es vacío.
func (s *CatalogService) ListCategories(ctx context.Context, userID string) ([]repository.Category, error) {
	var (
		cats []repository.Category
		err  error
	)
	if userID != "" {
		cats, err = s.deps.Categories.ListByUser(ctx, userID)
	} else {
		cats, err = s.deps.Categories.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	return cats, nil
}

// UpdateCategory aplica cambios parciales. Si cambia la imagen, la anterior
// se borra del artifact store (best-effort).
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input repository.UpdateCategoryInput) (*repository.Category, error) {
	prev, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	cat, err := s.deps.Categories.Update(ctx, id, input)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrNotFound.WithDetail("La categoría no existe.")
		}
		return nil, fmt.Errorf("catalog: update category: %w", err)
	}

	if input.Image != nil && prev.Image != "" && prev.Image != *input.Image {
		_ = s.deps.Artifacts.Delete(prev.Image)
	}
	return cat, nil
}

// DeleteCategory elimina la categoría y su imagen.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	cat, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deps.Categories.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrNotFound.WithDetail("La categoría no existe.")
		}
		return fmt.Errorf("catalog: delete category: %w", err)
	}
	_ = s.deps.Artifacts.Delete(cat.Image)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Productos
// ─────────────────────────────────────────────────────────────────────────────

// CreateProduct publica un producto. La categoría debe existir.
func (s *CatalogService) CreateProduct(ctx context.Context, userID string, input repository.CreateProductInput) (*repository.Product, error) {
	if input.Name == "" || input.CategoryID == "" {
		return nil, apperrors.ErrMissingFields.WithDetail("name y category_id son requeridos")
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, apperrors.ErrInvalidParameter.WithDetail("price y stock no pueden ser negativos")
	}
	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	input.UserID = userID

	product, err := s.deps.Products.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("catalog: create product: %w", err)
	}
	logger.From(ctx).Info("product created",
		logger.Layer("service"), logger.Op("catalog.create_product"),
		logger.UserID(userID), logger.ProductID(product.ID))
	return product, nil
}

// GetProduct retorna un producto puntual.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*repository.Product, error) {
	product, err := s.deps.Products.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog: get product: %w", err)
	}
	return product, nil
}

// ListProducts retorna todos los productos, o los de un usuario si userID
// no es vacío.
func (s *CatalogService) ListProducts(ctx context.Context, userID string) ([]repository.Product, error) {
	var (
		products []repository.Product
		err      error
	)
	if userID != "" {
		products, err = s.deps.Products.ListByUser(ctx, userID)
	} else {
		products, err = s.deps.Products.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	return products, nil
}

// UpdateProduct aplica cambios parciales a un producto.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input repository.UpdateProductInput) (*repository.Product, error) {
	prev, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, apperrors.ErrInvalidParameter.WithDetail("price no puede ser negativo")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, apperrors.ErrInvalidParameter.WithDetail("stock no puede ser negativo")
	}
	if input.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := s.deps.Products.Update(ctx, id, input)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog: update product: %w", err)
	}

	if input.Image != nil && prev.Image != "" && prev.Image != *input.Image {
		_ = s.deps.Artifacts.Delete(prev.Image)
	}
	return product, nil
}

// DeleteProduct elimina el producto y su imagen.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deps.Products.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("catalog: delete product: %w", err)
	}
	_ = s.deps.Artifacts.Delete(product.Image)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos
// ─────────────────────────────────────────────────────────────────────────────

// CreateEvent crea un evento/promoción.
func (s *CatalogService) CreateEvent(ctx context.Context, userID string, input repository.CreateEventInput) (*repository.Event, error) {
	if input.Name == "" {
		return nil, apperrors.ErrMissingFields.WithDetail("name es requerido")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, apperrors.ErrInvalidParameter.WithDetail("end_date no puede ser anterior a start_date")
	}
	input.UserID = userID

	event, err := s.deps.Events.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("catalog: create event: %w", err)
	}
	return event, nil
}

// GetEvent retorna un evento puntual.
func (s *CatalogService) GetEvent(ctx context.Context, id string) (*repository.Event, error) {
	event, err := s.deps.Events.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrNotFound.WithDetail("El evento no existe.")
		}
		return nil, fmt.Errorf("catalog: get event: %w", err)
	}
	return event, nil
}

// ListEvents retorna todos los eventos.
func (s *CatalogService) ListEvents(ctx context.Context) ([]repository.Event, error) {
	events, err := s.deps.Events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list events: %w", err)
	}
	return events, nil
}

// UpdateEvent aplica cambios parciales a un evento.
func (s *CatalogService) UpdateEvent(ctx context.Context, id string, input repository.UpdateEventInput) (*repository.Event, error) {
	prev, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	event, err := s.deps.Events.Update(ctx, id, input)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrNotFound.WithDetail("El evento no existe.")
		}
		return nil, fmt.Errorf("catalog: update event: %w", err)
	}

	if input.Image != nil && prev.Image != "" && prev.Image != *input.Image {
		_ = s.deps.Artifacts.Delete(prev.Image)
	}
	return event, nil
}

// DeleteEvent elimina el evento y su imagen.
func (s *CatalogService) DeleteEvent(ctx context.Context, id string) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deps.Events.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrNotFound.WithDetail("El evento no existe.")
		}
		return fmt.Errorf("catalog: delete event: %w", err)
	}
	_ = s.deps.Artifacts.Delete(event.Image)
	return nil
}
