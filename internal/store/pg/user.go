package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

type userRepo struct{ pool *pgxpool.Pool }

const userCols = `id, telegram_id, first_name, last_name, username, phone_number, image, language_code, role, created_at, updated_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(&u.ID, &u.TelegramID, &u.FirstName, &u.LastName, &u.Username,
		&u.PhoneNumber, &u.Image, &u.LanguageCode, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) GetByTelegramID(ctx context.Context, telegramID string) (*repository.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE telegram_id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, telegramID))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *userRepo) List(ctx context.Context) ([]repository.User, error) {
	const q = `SELECT ` + userCols + ` FROM users ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *userRepo) Upsert(ctx context.Context, input repository.UpsertUserInput) (*repository.User, error) {
	if input.TelegramID == "" {
		return nil, repository.ErrInvalidInput
	}
	// El rol no se toca en conflicto: un owner que vuelve a /start sigue siendo owner.
	const q = `
		INSERT INTO users (telegram_id, first_name, last_name, username, image, language_code, role)
		VALUES ($1, $2, $3, $4, $5, $6, 'user')
		ON CONFLICT (telegram_id)
		DO UPDATE SET first_name = EXCLUDED.first_name,
		              last_name = EXCLUDED.last_name,
		              username = EXCLUDED.username,
		              image = EXCLUDED.image,
		              language_code = EXCLUDED.language_code,
		              updated_at = NOW()
		RETURNING ` + userCols
	return scanUser(r.pool.QueryRow(ctx, q,
		input.TelegramID, input.FirstName, input.LastName, input.Username, input.Image, input.LanguageCode))
}

func (r *userRepo) Update(ctx context.Context, id string, input repository.UpdateUserInput) (*repository.User, error) {
	if input.Role != nil && !input.Role.Valid() {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    role       = COALESCE($4, role),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userCols
	var role *string
	if input.Role != nil {
		s := string(*input.Role)
		role = &s
	}
	return scanUser(r.pool.QueryRow(ctx, q, id, input.FirstName, input.LastName, role))
}

func (r *userRepo) UpdateRole(ctx context.Context, id string, role repository.Role) error {
	if !role.Valid() {
		return repository.ErrInvalidInput
	}
	const q = `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, string(role))
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
