package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

// ─── Carritos ────────────────────────────────────────────────────────────────

type cartRepo struct{ s *Store }

func (r *cartRepo) GetByUserID(_ context.Context, userID string) (*repository.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCart(c), nil
}

func (r *cartRepo) Save(_ context.Context, cart *repository.Cart) (*repository.Cart, error) {
	if cart == nil || cart.UserID == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	stored := cloneCart(cart)
	if prev, ok := r.s.carts[cart.UserID]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.ID = newID()
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.s.carts[cart.UserID] = stored
	return cloneCart(stored), nil
}

func cloneCart(c *repository.Cart) *repository.Cart {
	cp := *c
	cp.Items = append([]repository.CartItem(nil), c.Items...)
	return &cp
}

// ─── Favoritos ───────────────────────────────────────────────────────────────

type favoriteRepo struct{ s *Store }

func (r *favoriteRepo) Create(_ context.Context, userID, productID string) (*repository.Favorite, error) {
	if userID == "" || productID == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.favorites {
		if f.UserID == userID && f.ProductID == productID {
			return nil, repository.ErrConflict
		}
	}

	f := &repository.Favorite{
		ID:        newID(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: r.s.now().UTC(),
	}
	r.s.favorites[f.ID] = f
	cp := *f
	return &cp, nil
}

func (r *favoriteRepo) GetByUserAndProduct(_ context.Context, userID, productID string) (*repository.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, f := range r.s.favorites {
		if f.UserID == userID && f.ProductID == productID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *favoriteRepo) ListByUser(_ context.Context, userID string) ([]repository.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []repository.Favorite
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *favoriteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.favorites[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.favorites, id)
	return nil
}
