package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

type sellerRepo struct{ s *Store }

func (r *sellerRepo) Create(_ context.Context, input repository.CreateSellerInput) (*repository.Seller, error) {
	if input.UserID == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// A lo sumo una solicitud por usuario.
	for _, sl := range r.s.sellers {
		if sl.UserID == input.UserID {
			return nil, repository.ErrConflict
		}
	}

	now := r.s.now().UTC()
	sl := &repository.Seller{
		ID:            newID(),
		UserID:        input.UserID,
		Name:          input.Name,
		CompanyName:   input.CompanyName,
		Email:         input.Email,
		CountryRegion: input.CountryRegion,
		StreetAddress: input.StreetAddress,
		PhoneNumber:   input.PhoneNumber,
		DocumentPath:  input.DocumentPath,
		Status:        repository.SellerPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.s.sellers[sl.ID] = sl
	cp := *sl
	return &cp, nil
}

func (r *sellerRepo) GetByID(_ context.Context, id string) (*repository.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sl, ok := r.s.sellers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sl
	return &cp, nil
}

func (r *sellerRepo) GetByUserID(_ context.Context, userID string) (*repository.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sl := range r.s.sellers {
		if sl.UserID == userID {
			cp := *sl
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sellerRepo) List(_ context.Context) ([]repository.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.Seller, 0, len(r.s.sellers))
	for _, sl := range r.s.sellers {
		out = append(out, *sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *sellerRepo) UpdateStatus(_ context.Context, id string, status repository.SellerStatus) error {
	if !status.Valid() {
		return repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.sellers[id]
	if !ok {
		return repository.ErrNotFound
	}
	sl.Status = status
	sl.UpdatedAt = r.s.now().UTC()
	return nil
}

func (r *sellerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.sellers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.sellers, id)
	return nil
}
