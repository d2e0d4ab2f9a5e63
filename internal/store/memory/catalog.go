package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// ─── Categorías ──────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, input repository.CreateCategoryInput) (*repository.Category, error) {
	if input.Name == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	c := &repository.Category{
		ID:        newID(),
		UserID:    input.UserID,
		Name:      input.Name,
		Image:     input.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*repository.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) List(_ context.Context) ([]repository.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, *c)
	}
	sortByCreated(out, func(c repository.Category) int64 { return c.CreatedAt.UnixNano() })
	return out, nil
}

func (r *categoryRepo) ListByUser(_ context.Context, userID string) ([]repository.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []repository.Category
	for _, c := range r.s.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sortByCreated(out, func(c repository.Category) int64 { return c.CreatedAt.UnixNano() })
	return out, nil
}

func (r *categoryRepo) Update(_ context.Context, id string, input repository.UpdateCategoryInput) (*repository.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Image != nil {
		c.Image = *input.Image
	}
	c.UpdatedAt = r.s.now().UTC()
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, input repository.CreateProductInput) (*repository.Product, error) {
	if input.Name == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	p := &repository.Product{
		ID:          newID(),
		UserID:      input.UserID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Stock:       input.Stock,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.products[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*repository.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) List(_ context.Context) ([]repository.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, *p)
	}
	sortByCreated(out, func(p repository.Product) int64 { return p.CreatedAt.UnixNano() })
	return out, nil
}

func (r *productRepo) ListByUser(_ context.Context, userID string) ([]repository.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []repository.Product
	for _, p := range r.s.products {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sortByCreated(out, func(p repository.Product) int64 { return p.CreatedAt.UnixNano() })
	return out, nil
}

func (r *productRepo) Update(_ context.Context, id string, input repository.UpdateProductInput) (*repository.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.CategoryID != nil {
		p.CategoryID = *input.CategoryID
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Image != nil {
		p.Image = *input.Image
	}
	p.UpdatedAt = r.s.now().UTC()
	cp := *p
	return &cp, nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ─── Eventos ─────────────────────────────────────────────────────────────────

type eventRepo struct{ s *Store }

func (r *eventRepo) Create(_ context.Context, input repository.CreateEventInput) (*repository.Event, error) {
	if input.Name == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	e := &repository.Event{
		ID:          newID(),
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Image:       input.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.events[e.ID] = e
	cp := *e
	return &cp, nil
}

func (r *eventRepo) GetByID(_ context.Context, id string) (*repository.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *eventRepo) List(_ context.Context) ([]repository.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		out = append(out, *e)
	}
	sortByCreated(out, func(e repository.Event) int64 { return e.CreatedAt.UnixNano() })
	return out, nil
}

func (r *eventRepo) Update(_ context.Context, id string, input repository.UpdateEventInput) (*repository.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.Name != nil {
		e.Name = *input.Name
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = input.EndDate
	}
	if input.Image != nil {
		e.Image = *input.Image
	}
	e.UpdatedAt = r.s.now().UTC()
	cp := *e
	return &cp, nil
}

func (r *eventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}

// sortByCreated ordena estable por fecha de creación ascendente.
func sortByCreated[T any](items []T, key func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool { return key(items[i]) < key(items[j]) })
}
