package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

func seedUser(t *testing.T, s *Store, tid string) *repository.User {
	t.Helper()
	u, err := s.Users().Upsert(context.Background(), repository.UpsertUserInput{
		TelegramID: tid,
		FirstName:  "Ana",
		Username:   "ana",
	})
	require.NoError(t, err)
	return u
}

func TestUserUpsertCreatesWithDefaultRole(t *testing.T) {
	s := New()
	u := seedUser(t, s, "111")

	require.NotEmpty(t, u.ID)
	require.Equal(t, repository.RoleUser, u.Role)

	got, err := s.Users().GetByTelegramID(context.Background(), "111")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestUserUpsertDoesNotClobberRole(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "111")

	require.NoError(t, s.Users().UpdateRole(ctx, u.ID, repository.RoleOwner))

	// Un /start posterior resincroniza el perfil pero no degrada el rol.
	again, err := s.Users().Upsert(ctx, repository.UpsertUserInput{
		TelegramID: "111",
		FirstName:  "Ana María",
	})
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)
	require.Equal(t, repository.RoleOwner, again.Role)
	require.Equal(t, "Ana María", again.FirstName)
}

func TestUserNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Users().GetByID(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Users().Delete(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSellerOnePerUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "111")

	first, err := s.Sellers().Create(ctx, repository.CreateSellerInput{UserID: u.ID, Name: "Tienda Ana"})
	require.NoError(t, err)
	require.Equal(t, repository.SellerPending, first.Status)

	_, err = s.Sellers().Create(ctx, repository.CreateSellerInput{UserID: u.ID, Name: "Otra"})
	require.ErrorIs(t, err, repository.ErrConflict)

	// Tras borrar la solicitud puede volver a aplicar.
	require.NoError(t, s.Sellers().Delete(ctx, first.ID))
	_, err = s.Sellers().Create(ctx, repository.CreateSellerInput{UserID: u.ID, Name: "Tienda Ana"})
	require.NoError(t, err)
}

func TestSellerUpdateStatus(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "111")

	sl, _ := s.Sellers().Create(ctx, repository.CreateSellerInput{UserID: u.ID, Name: "Tienda"})
	require.NoError(t, s.Sellers().UpdateStatus(ctx, sl.ID, repository.SellerApproved))

	got, err := s.Sellers().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, repository.SellerApproved, got.Status)

	require.ErrorIs(t, s.Sellers().UpdateStatus(ctx, sl.ID, repository.SellerStatus("banana")), repository.ErrInvalidInput)
}

func TestProductCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "111")

	cat, err := s.Categories().Create(ctx, repository.CreateCategoryInput{UserID: u.ID, Name: "Ropa"})
	require.NoError(t, err)

	p, err := s.Products().Create(ctx, repository.CreateProductInput{
		UserID:     u.ID,
		CategoryID: cat.ID,
		Name:       "Remera",
		Stock:      10,
		Price:      19.99,
	})
	require.NoError(t, err)

	newPrice := 24.99
	updated, err := s.Products().Update(ctx, p.ID, repository.UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 24.99, updated.Price)
	require.Equal(t, "Remera", updated.Name)

	mine, err := s.Products().ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, s.Products().Delete(ctx, p.ID))
	_, err = s.Products().GetByID(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartSaveReplacesAggregate(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "111")

	_, err := s.Carts().GetByUserID(ctx, u.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	saved, err := s.Carts().Save(ctx, &repository.Cart{
		UserID: u.ID,
		Items:  []repository.CartItem{{ProductID: "p1", Quantity: 2, Price: 10}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	// Guardar de nuevo reemplaza las líneas pero conserva ID y fecha de alta.
	again, err := s.Carts().Save(ctx, &repository.Cart{
		UserID: u.ID,
		Items:  []repository.CartItem{{ProductID: "p2", Quantity: 1, Price: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, saved.ID, again.ID)
	require.Equal(t, saved.CreatedAt, again.CreatedAt)
	require.Len(t, again.Items, 1)
	require.Equal(t, "p2", again.Items[0].ProductID)
}

func TestFavoriteUniquePair(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "111")

	f, err := s.Favorites().Create(ctx, u.ID, "p1")
	require.NoError(t, err)

	_, err = s.Favorites().Create(ctx, u.ID, "p1")
	require.ErrorIs(t, err, repository.ErrConflict)

	// Otro producto del mismo usuario sí entra.
	_, err = s.Favorites().Create(ctx, u.ID, "p2")
	require.NoError(t, err)

	require.NoError(t, s.Favorites().Delete(ctx, f.ID))
	_, err = s.Favorites().GetByUserAndProduct(ctx, u.ID, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
