package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// ─── Carritos ────────────────────────────────────────────────────────────────

type cartRepo struct{ pool *pgxpool.Pool }

func (r *cartRepo) GetByUserID(ctx context.Context, userID string) (*repository.Cart, error) {
	const q = `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`
	var c repository.Cart
	err := r.pool.QueryRow(ctx, q, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}

	const qi = `SELECT product_id, quantity, price FROM cart_items WHERE cart_id = $1 ORDER BY added_at`
	rows, err := r.pool.Query(ctx, qi, c.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var it repository.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}

// Save reescribe el agregado completo en una transacción: upsert del carrito,
// delete de líneas viejas, insert de las nuevas.
func (r *cartRepo) Save(ctx context.Context, cart *repository.Cart) (*repository.Cart, error) {
	if cart == nil || cart.UserID == "" {
		return nil, repository.ErrInvalidInput
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapErr(err)
	}
	defer tx.Rollback(ctx)

	out := &repository.Cart{UserID: cart.UserID, Items: append([]repository.CartItem(nil), cart.Items...)}

	const qc = `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, qc, cart.UserID).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, out.ID); err != nil {
		return nil, mapErr(err)
	}
	for _, it := range out.Items {
		const qi = `INSERT INTO cart_items (cart_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, qi, out.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return nil, mapErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// ─── Favoritos ───────────────────────────────────────────────────────────────

type favoriteRepo struct{ pool *pgxpool.Pool }

const favoriteCols = `id, user_id, product_id, created_at`

func scanFavorite(row pgx.Row) (*repository.Favorite, error) {
	var f repository.Favorite
	err := row.Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

func (r *favoriteRepo) Create(ctx context.Context, userID, productID string) (*repository.Favorite, error) {
	if userID == "" || productID == "" {
		return nil, repository.ErrInvalidInput
	}
	// (user_id, product_id) es UNIQUE: el duplicado sale como ErrConflict.
	const q = `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		RETURNING ` + favoriteCols
	return scanFavorite(r.pool.QueryRow(ctx, q, userID, productID))
}

func (r *favoriteRepo) GetByUserAndProduct(ctx context.Context, userID, productID string) (*repository.Favorite, error) {
	const q = `SELECT ` + favoriteCols + ` FROM favorites WHERE user_id = $1 AND product_id = $2`
	return scanFavorite(r.pool.QueryRow(ctx, q, userID, productID))
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]repository.Favorite, error) {
	const q = `SELECT ` + favoriteCols + ` FROM favorites WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (r *favoriteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
