package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

type sellerRepo struct{ pool *pgxpool.Pool }

const sellerCols = `id, user_id, name, company_name, email, country_region, street_address, phone_number, document_path, status, created_at, updated_at`

func scanSeller(row pgx.Row) (*repository.Seller, error) {
	var s repository.Seller
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.CompanyName, &s.Email, &s.CountryRegion,
		&s.StreetAddress, &s.PhoneNumber, &s.DocumentPath, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *sellerRepo) Create(ctx context.Context, input repository.CreateSellerInput) (*repository.Seller, error) {
	if input.UserID == "" {
		return nil, repository.ErrInvalidInput
	}
	// user_id es UNIQUE: el índice convierte la doble solicitud en ErrConflict.
	const q = `
		INSERT INTO sellers (user_id, name, company_name, email, country_region, street_address, phone_number, document_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
		RETURNING ` + sellerCols
	return scanSeller(r.pool.QueryRow(ctx, q,
		input.UserID, input.Name, input.CompanyName, input.Email,
		input.CountryRegion, input.StreetAddress, input.PhoneNumber, input.DocumentPath))
}

func (r *sellerRepo) GetByID(ctx context.Context, id string) (*repository.Seller, error) {
	const q = `SELECT ` + sellerCols + ` FROM sellers WHERE id = $1`
	return scanSeller(r.pool.QueryRow(ctx, q, id))
}

func (r *sellerRepo) GetByUserID(ctx context.Context, userID string) (*repository.Seller, error) {
	const q = `SELECT ` + sellerCols + ` FROM sellers WHERE user_id = $1`
	return scanSeller(r.pool.QueryRow(ctx, q, userID))
}

func (r *sellerRepo) List(ctx context.Context) ([]repository.Seller, error) {
	const q = `SELECT ` + sellerCols + ` FROM sellers ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *sellerRepo) UpdateStatus(ctx context.Context, id string, status repository.SellerStatus) error {
	if !status.Valid() {
		return repository.ErrInvalidInput
	}
	const q = `UPDATE sellers SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, string(status))
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sellerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
