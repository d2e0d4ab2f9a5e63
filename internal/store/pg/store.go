// Package pg implementa los repositorios del dominio sobre PostgreSQL
// usando pgx/v5 con pool de conexiones.
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// Store agrupa los repositorios sobre un único pool.
type Store struct{ pool *pgxpool.Pool }

// Config tuning del pool.
type Config struct {
	MaxConns        int
	ConnMaxLifetime time.Duration
}

// New abre el pool y verifica conectividad con un ping.
func New(ctx context.Context, dsn string, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Pool expone el pool interno (migraciones, health checks).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Accessors: cada entidad expone su repositorio como vista sobre el mismo pool.

func (s *Store) Users() repository.UserRepository          { return &userRepo{s.pool} }
func (s *Store) Sellers() repository.SellerRepository      { return &sellerRepo{s.pool} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s.pool} }
func (s *Store) Products() repository.ProductRepository    { return &productRepo{s.pool} }
func (s *Store) Events() repository.EventRepository        { return &eventRepo{s.pool} }
func (s *Store) Carts() repository.CartRepository          { return &cartRepo{s.pool} }
func (s *Store) Favorites() repository.FavoriteRepository  { return &favoriteRepo{s.pool} }

// mapErr traduce errores del driver a los sentinelas del dominio.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return repository.ErrConflict
	}
	return err
}
