// Package store define el contrato común de los drivers de persistencia.
// Hay dos implementaciones con la misma semántica: memory (dev/tests) y
// pg (producción).
package store

import "github.com/dropDatabas3/telemart/internal/domain/repository"

// Store agrupa los repositorios del dominio. El wiring elige el driver según
// la configuración; el resto del código solo ve esta interfaz.
type Store interface {
	Users() repository.UserRepository
	Sellers() repository.SellerRepository
	Categories() repository.CategoryRepository
	Products() repository.ProductRepository
	Events() repository.EventRepository
	Carts() repository.CartRepository
	Favorites() repository.FavoriteRepository

	// Close libera los recursos del driver (pool de conexiones en postgres).
	Close()
}
