package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// ─── Categorías ──────────────────────────────────────────────────────────────

type categoryRepo struct{ pool *pgxpool.Pool }

const categoryCols = `id, user_id, name, image, created_at, updated_at`

func scanCategory(row pgx.Row) (*repository.Category, error) {
	var c repository.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *categoryRepo) Create(ctx context.Context, input repository.CreateCategoryInput) (*repository.Category, error) {
	if input.Name == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO categories (user_id, name, image)
		VALUES ($1, $2, $3)
		RETURNING ` + categoryCols
	return scanCategory(r.pool.QueryRow(ctx, q, input.UserID, input.Name, input.Image))
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*repository.Category, error) {
	const q = `SELECT ` + categoryCols + ` FROM categories WHERE id = $1`
	return scanCategory(r.pool.QueryRow(ctx, q, id))
}

func (r *categoryRepo) List(ctx context.Context) ([]repository.Category, error) {
	const q = `SELECT ` + categoryCols + ` FROM categories ORDER BY created_at`
	return collectCategories(r.pool.Query(ctx, q))
}

func (r *categoryRepo) ListByUser(ctx context.Context, userID string) ([]repository.Category, error) {
	const q = `SELECT ` + categoryCols + ` FROM categories WHERE user_id = $1 ORDER BY created_at`
	return collectCategories(r.pool.Query(ctx, q, userID))
}

func collectCategories(rows pgx.Rows, err error) ([]repository.Category, error) {
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *categoryRepo) Update(ctx context.Context, id string, input repository.UpdateCategoryInput) (*repository.Category, error) {
	const q = `
		UPDATE categories
		SET name = COALESCE($2, name),
		    image = COALESCE($3, image),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryCols
	return scanCategory(r.pool.QueryRow(ctx, q, id, input.Name, input.Image))
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

type productRepo struct{ pool *pgxpool.Pool }

const productCols = `id, user_id, category_id, name, stock, price, description, image, created_at, updated_at`

func scanProduct(row pgx.Row) (*repository.Product, error) {
	var p repository.Product
	err := row.Scan(&p.ID, &p.UserID, &p.CategoryID, &p.Name, &p.Stock, &p.Price,
		&p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, input repository.CreateProductInput) (*repository.Product, error) {
	if input.Name == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO products (user_id, category_id, name, stock, price, description, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productCols
	return scanProduct(r.pool.QueryRow(ctx, q,
		input.UserID, input.CategoryID, input.Name, input.Stock, input.Price, input.Description, input.Image))
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products WHERE id = $1`
	return scanProduct(r.pool.QueryRow(ctx, q, id))
}

func (r *productRepo) List(ctx context.Context) ([]repository.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products ORDER BY created_at`
	return collectProducts(r.pool.Query(ctx, q))
}

func (r *productRepo) ListByUser(ctx context.Context, userID string) ([]repository.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products WHERE user_id = $1 ORDER BY created_at`
	return collectProducts(r.pool.Query(ctx, q, userID))
}

func collectProducts(rows pgx.Rows, err error) ([]repository.Product, error) {
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, id string, input repository.UpdateProductInput) (*repository.Product, error) {
	const q = `
		UPDATE products
		SET name        = COALESCE($2, name),
		    category_id = COALESCE($3, category_id),
		    stock       = COALESCE($4, stock),
		    price       = COALESCE($5, price),
		    description = COALESCE($6, description),
		    image       = COALESCE($7, image),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + productCols
	return scanProduct(r.pool.QueryRow(ctx, q, id,
		input.Name, input.CategoryID, input.Stock, input.Price, input.Description, input.Image))
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ─── Eventos ─────────────────────────────────────────────────────────────────

type eventRepo struct{ pool *pgxpool.Pool }

const eventCols = `id, user_id, name, description, start_date, end_date, image, created_at, updated_at`

func scanEvent(row pgx.Row) (*repository.Event, error) {
	var e repository.Event
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Description, &e.StartDate, &e.EndDate,
		&e.Image, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (r *eventRepo) Create(ctx context.Context, input repository.CreateEventInput) (*repository.Event, error) {
	if input.Name == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO events (user_id, name, description, start_date, end_date, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + eventCols
	return scanEvent(r.pool.QueryRow(ctx, q,
		input.UserID, input.Name, input.Description, input.StartDate, input.EndDate, input.Image))
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*repository.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

func (r *eventRepo) List(ctx context.Context) ([]repository.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) Update(ctx context.Context, id string, input repository.UpdateEventInput) (*repository.Event, error) {
	const q = `
		UPDATE events
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    start_date  = COALESCE($4, start_date),
		    end_date    = COALESCE($5, end_date),
		    image       = COALESCE($6, image),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + eventCols
	return scanEvent(r.pool.QueryRow(ctx, q, id,
		input.Name, input.Description, input.StartDate, input.EndDate, input.Image))
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
