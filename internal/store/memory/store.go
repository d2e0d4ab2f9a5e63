// Package memory implementa los repositorios del dominio sobre maps en
// proceso. Es el driver por defecto en desarrollo y la base de los tests de
// servicios: misma semántica que el driver postgres (incluidos ErrNotFound y
// ErrConflict) sin infraestructura externa.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// Store agrupa todos los repositorios sobre un único lock.
// El volumen esperado no justifica locking más fino.
type Store struct {
	mu sync.RWMutex

	users      map[string]*repository.User   // por ID
	usersByTID map[string]string             // telegram_id -> ID
	sellers    map[string]*repository.Seller // por ID
	categories map[string]*repository.Category
	products   map[string]*repository.Product
	events     map[string]*repository.Event
	carts      map[string]*repository.Cart // por UserID
	favorites  map[string]*repository.Favorite

	now func() time.Time
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		users:      make(map[string]*repository.User),
		usersByTID: make(map[string]string),
		sellers:    make(map[string]*repository.Seller),
		categories: make(map[string]*repository.Category),
		products:   make(map[string]*repository.Product),
		events:     make(map[string]*repository.Event),
		carts:      make(map[string]*repository.Cart),
		favorites:  make(map[string]*repository.Favorite),
		now:        time.Now,
	}
}

// Close existe por simetría con el driver postgres; acá no hay nada que liberar.
func (s *Store) Close() {}

// Accessors: cada entidad expone su repositorio como vista sobre el mismo Store.

func (s *Store) Users() repository.UserRepository         { return &userRepo{s} }
func (s *Store) Sellers() repository.SellerRepository     { return &sellerRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }
func (s *Store) Products() repository.ProductRepository   { return &productRepo{s} }
func (s *Store) Events() repository.EventRepository       { return &eventRepo{s} }
func (s *Store) Carts() repository.CartRepository         { return &cartRepo{s} }
func (s *Store) Favorites() repository.FavoriteRepository { return &favoriteRepo{s} }

func newID() string { return uuid.NewString() }
