package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) GetByTelegramID(_ context.Context, telegramID string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usersByTID[telegramID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) List(_ context.Context) ([]repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *userRepo) Upsert(_ context.Context, input repository.UpsertUserInput) (*repository.User, error) {
	if input.TelegramID == "" {
		return nil, repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	if id, ok := r.s.usersByTID[input.TelegramID]; ok {
		// Resincronización de perfil: el rol ganado no se pisa.
		u := r.s.users[id]
		u.FirstName = input.FirstName
		u.LastName = input.LastName
		u.Username = input.Username
		u.Image = input.Image
		u.LanguageCode = input.LanguageCode
		u.UpdatedAt = now
		cp := *u
		return &cp, nil
	}

	u := &repository.User{
		ID:           newID(),
		TelegramID:   input.TelegramID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Image:        input.Image,
		LanguageCode: input.LanguageCode,
		Role:         repository.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users[u.ID] = u
	r.s.usersByTID[u.TelegramID] = u.ID
	cp := *u
	return &cp, nil
}

func (r *userRepo) Update(_ context.Context, id string, input repository.UpdateUserInput) (*repository.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, repository.ErrInvalidInput
		}
		u.Role = *input.Role
	}
	u.UpdatedAt = r.s.now().UTC()
	cp := *u
	return &cp, nil
}

func (r *userRepo) UpdateRole(_ context.Context, id string, role repository.Role) error {
	if !role.Valid() {
		return repository.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = r.s.now().UTC()
	return nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.s.usersByTID, u.TelegramID)
	delete(r.s.users, id)
	return nil
}
